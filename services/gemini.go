package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flavioricotta/Obracontrolia/analytics"
	"github.com/flavioricotta/Obracontrolia/config"
	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
)

const geminiModel = "gemini-flash-latest"

// Gemini wraps the model client behind the three analysis operations the
// app exposes. One instance is shared by all handlers.
type Gemini struct {
	llm    *googleai.GoogleAI
	logger zerolog.Logger
}

// NewGemini builds the client from GEMINI_API_KEY.
func NewGemini(ctx context.Context) (*Gemini, error) {
	cfg := config.New()
	apiKey := config.GetString(cfg, "GEMINI_API_KEY", "")
	if apiKey == "" {
		return nil, errs.NewEnvironmentVariableError("GEMINI_API_KEY")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(geminiModel),
	)
	if err != nil {
		return nil, errs.NewServiceUnavailableError("gemini", err)
	}

	return &Gemini{
		llm:    llm,
		logger: log.With().Str("service", "gemini").Logger(),
	}, nil
}

// ReceiptData is the structured result of reading a receipt photo.
type ReceiptData struct {
	Amount       float64 `json:"amount"`
	Date         *string `json:"date"`
	Supplier     string  `json:"supplier"`
	Description  string  `json:"description"`
	CategoryName string  `json:"categoryName"`
}

// AnalyzeReceipt reads a receipt or invoice photo and extracts amount, date,
// supplier, a short description and the best-fitting category name picked
// from the given list.
func (g *Gemini) AnalyzeReceipt(ctx context.Context, image []byte, mimeType string, categories []models.Category) (*ReceiptData, error) {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}

	prompt := fmt.Sprintf(`Analise esta imagem de recibo/nota fiscal de construção civil.
Extraia os seguintes dados e retorne APENAS um objeto JSON (sem markdown):

{
  "amount": (número, valor total pago),
  "date": (string no formato YYYY-MM-DD, se não achar use null),
  "supplier": (string, nome da loja/fornecedor),
  "description": (string, resumo breve do que foi comprado ex: "5 sacos de cimento"),
  "categoryName": (string, escolha OBRIGATORIAMENTE a categoria mais adequada desta lista exata: [%s])
}`, strings.Join(names, ", "))

	content := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
				llms.BinaryPart(mimeType, image),
			},
		},
	}

	resp, err := g.llm.GenerateContent(ctx, content)
	if err != nil {
		return nil, errs.NewServiceUnavailableError("gemini", err)
	}
	text := firstChoice(resp)

	var data ReceiptData
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &data); err != nil {
		g.logger.Error().Err(err).Str("raw", text).Msg("Receipt response was not valid JSON")
		return nil, errs.NewModelResponseError("gemini", err)
	}
	return &data, nil
}

// MaterialItem is one line of a material estimation. Quantity and price come
// back as strings because the model mixes units into the quantity field.
type MaterialItem struct {
	Name           string `json:"name"`
	Quantity       string `json:"quantity"`
	EstimatedPrice string `json:"estimatedPrice"`
}

// EstimateMaterials turns a free-form job description into a complete
// material list with Brazilian market prices, 10% waste margin included.
func (g *Gemini) EstimateMaterials(ctx context.Context, userPrompt string) ([]MaterialItem, error) {
	prompt := fmt.Sprintf(`Atue como um Engenheiro Civil Sênior e Orçamentista Especialista.

TAREFA:
Com base na solicitação do usuário: "%s", elabore uma LISTA TÉCNICA COMPLETA DE MATERIAIS.

REGRAS CRÍTICAS PARA A LISTA:
1. Completude: Não liste apenas o óbvio. Inclua itens auxiliares essenciais (ex: buchas, parafusos, vedantes, lixas, fitas, cola, pregos). Se for pintura, inclua rolos e proteção.
2. Especificidade: Use nomes técnicos e completos (ex: "Cimento CP-II" em vez de "Cimento").
3. Margem de Perda: Já inclua automaticamente 10%% de margem de segurança nas quantidades onde aplicável.
4. Preço: Estime o PREÇO UNITÁRIO MÉDIO DE MERCADO NO BRASIL (em Reais).

FORMATO DE RESPOSTA (JSON PURO):
Retorne APENAS um array JSON, sem markdown e sem texto antes ou depois.

Schema do Objeto JSON:
{
  "name": "Nome Técnico Completo do Material",
  "quantity": "Quantidade numérica + Unidade (ex: 5 sacos, 12 metros, 2 latas)",
  "estimatedPrice": "Preço Unitário (apenas números, ponto como decimal, ex: 35.50)"
}`, userPrompt)

	resp, err := g.llm.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)},
		llms.WithTemperature(0.1),
		llms.WithJSONMode(),
	)
	if err != nil {
		return nil, errs.NewServiceUnavailableError("gemini", err)
	}
	text := firstChoice(resp)

	var items []MaterialItem
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &items); err != nil {
		g.logger.Error().Err(err).Str("raw", text).Msg("Material list response was not valid JSON")
		return nil, errs.NewModelResponseError("gemini", err)
	}
	return items, nil
}

// GenerateInsights asks for a short financial assessment of a project. Spend
// is pre-aggregated here so the model sees a compact summary, not raw rows.
func (g *Gemini) GenerateInsights(ctx context.Context, project models.Project, expenses []models.Expense, categories []models.Category) (string, error) {
	summary := map[string]any{
		"projectName":    project.Name,
		"budget":         project.Budget,
		"totalSpent":     analytics.TotalSpent(expenses),
		"percentageUsed": fmt.Sprintf("%.2f", analytics.BudgetUtilization(project.Budget, expenses)),
	}
	byCategory := map[string]float64{}
	for _, b := range analytics.SpendByCategory(expenses, categories) {
		byCategory[b.Name] = b.Value
	}
	summary["expensesByCategory"] = byCategory

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return "", errs.NewInternalErrorWithCause("failed to build insight summary", err)
	}

	prompt := fmt.Sprintf(`Atue como um consultor financeiro especialista em construção civil.
Analise os dados deste projeto: %s

Forneça:
1. Uma avaliação do andamento financeiro (está dentro do orçamento?).
2. Alertas sobre categorias que parecem estar consumindo muito recurso.
3. Uma dica prática para economizar nas próximas etapas.

Responda em texto corrido, formatado com Markdown, em português do Brasil. Seja direto e breve (máximo 3 parágrafos).`, summaryJSON)

	resp, err := g.llm.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)},
	)
	if err != nil {
		return "", errs.NewServiceUnavailableError("gemini", err)
	}

	text := firstChoice(resp)
	if text == "" {
		return "Não foi possível gerar insights no momento.", nil
	}
	return text, nil
}

func firstChoice(resp *llms.ContentResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Content
}

// ExtractJSON strips markdown fences and surrounding prose from model
// output, leaving the outermost JSON object or array.
func ExtractJSON(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	objStart := strings.IndexAny(s, "{[")
	if objStart < 0 {
		return s
	}
	var objEnd int
	if s[objStart] == '{' {
		objEnd = strings.LastIndex(s, "}")
	} else {
		objEnd = strings.LastIndex(s, "]")
	}
	if objEnd <= objStart {
		return s
	}
	return s[objStart : objEnd+1]
}

// ResolveCategory maps the model's chosen category name back onto a seeded
// row, tolerating case drift. ok is false when nothing matches.
func ResolveCategory(categories []models.Category, name string) (int64, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c.ID, true
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.ID, true
		}
	}
	return 0, false
}
