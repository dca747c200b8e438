package models

// ExpenseType partitions spend into the labor/material/service views.
type ExpenseType string

const (
	ExpenseTypeMaterial ExpenseType = "Material"
	ExpenseTypeLabor    ExpenseType = "Mão de Obra"
	ExpenseTypeService  ExpenseType = "Serviço"
	ExpenseTypeTaxes    ExpenseType = "Impostos"
	ExpenseTypeOther    ExpenseType = "Outros"
)

// Category is seeded reference data; effectively immutable after first run.
type Category struct {
	ID      int64       `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name    string      `json:"name" db:"name" gorm:"column:name;type:text;not null;unique"`
	Type    ExpenseType `json:"type" db:"type" gorm:"column:type;type:text;not null"`
	IsFixed bool        `json:"isFixed" db:"is_fixed" gorm:"column:is_fixed;not null;default:false"`
}

func (Category) TableName() string {
	return "categories"
}

// SeedCategories is the fixed construction category list loaded on first
// run. Names are the exact strings the receipt analyzer must pick from.
var SeedCategories = []Category{
	{Name: "Mão de Obra (Pedreiro/Servente/Mestre)", Type: ExpenseTypeLabor},
	{Name: "Mão de Obra Especializada (Elétrica/Hidráulica)", Type: ExpenseTypeLabor},
	{Name: "Engenharia e Arquitetura", Type: ExpenseTypeService},
	{Name: "Barracão+lig. provisórias(água/luz)+projetos/aprovs.", Type: ExpenseTypeOther},
	{Name: "Infraestrutura (estacas, brocas, baldrames, sapatas)", Type: ExpenseTypeMaterial},
	{Name: "Supraestrutura (Vigas, pilares, cintas, escadas)", Type: ExpenseTypeMaterial},
	{Name: "Paredes e Painéis", Type: ExpenseTypeMaterial},
	{Name: "Esquadrias", Type: ExpenseTypeMaterial},
	{Name: "Vidros e Plásticos", Type: ExpenseTypeMaterial},
	{Name: "Coberturas (estrutura e telhas)", Type: ExpenseTypeMaterial},
	{Name: "Impermeabilizações", Type: ExpenseTypeMaterial},
	{Name: "Revestimentos Internos", Type: ExpenseTypeMaterial},
	{Name: "Forros", Type: ExpenseTypeMaterial},
	{Name: "Revestimentos Externos", Type: ExpenseTypeMaterial},
	{Name: "Pinturas", Type: ExpenseTypeMaterial},
	{Name: "Pisos", Type: ExpenseTypeMaterial},
	{Name: "Acabamentos (soleiras, rodapés, peitoril etc.)", Type: ExpenseTypeMaterial},
	{Name: "Instalações Elétricas e Telefônicas", Type: ExpenseTypeMaterial},
	{Name: "Instalações Hidráulicas", Type: ExpenseTypeMaterial},
	{Name: "Instalações: Esgoto e Águas Pluviais", Type: ExpenseTypeMaterial},
	{Name: "Louças e Metais", Type: ExpenseTypeMaterial},
	{Name: "Complementos (limpeza final e calafete)", Type: ExpenseTypeService},
}
