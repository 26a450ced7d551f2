package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"github.com/fintra/fintra/internal/ledger"
)

// Gemini implements Classifier on top of the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

const classifyPrompt = `You are a bank statement parser. Extract ALL transactions from this bank statement.

Rules:
- Identify columns: date, description/narration, debit, credit, balance.
- Determine whether there are separate debit/credit columns or a single signed amount column.
- Parse dates in any format (DD/MM/YYYY, DD-MMM-YY, YYYY-MM-DD, ...) and convert to YYYY-MM-DD.
- Extract a clean, concise description for each transaction.
- A transaction is "income" for credits/deposits and "expense" for debits/withdrawals.
- Strip currency symbols and thousands separators from amounts.
- Ignore header rows, footer rows, and summary rows; only extract actual transaction rows.

Return ONLY a valid raw JSON array, no markdown, no code fences, no explanation.
Output must begin with "[" and end with "]".
Each element: {"date": "YYYY-MM-DD", "description": string, "amount": positive number, "type": "income" | "expense"}
`

type candidateJSON struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
}

func (g *Gemini) ClassifyStatement(ctx context.Context, text, filename string) ([]Candidate, error) {
	prompt := fmt.Sprintf("%s\nFile name: %s\n\nBank statement data:\n%s\n", classifyPrompt, filename, text)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var rows []candidateJSON
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &rows); err != nil {
		return nil, fmt.Errorf("unmarshal model output: %w", err)
	}

	candidates := make([]Candidate, 0, len(rows))

	for _, row := range rows {
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			continue
		}

		amount, err := decimal.NewFromString(row.Amount.String())
		if err != nil || !amount.IsPositive() {
			continue
		}

		txType := ledger.Type(row.Type)
		if !txType.Valid() {
			continue
		}

		candidates = append(candidates, Candidate{
			Date:        date,
			Description: strings.TrimSpace(row.Description),
			Amount:      amount,
			Type:        txType,
		})
	}

	return candidates, nil
}

func (g *Gemini) SuggestCategory(ctx context.Context, description string, amount decimal.Decimal, txType ledger.Type, categories []string) (string, error) {
	prompt := fmt.Sprintf(`You are a financial transaction categorizer.

Available categories for %s transactions:
%s

Pick the MOST appropriate category for this transaction:
- Description: %q
- Amount: %s
- Type: %s

Return ONLY the category name from the available list, nothing else. No explanation, no punctuation.
`, strings.ToUpper(string(txType)), strings.Join(categories, ", "), description, amount.String(), txType)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// cleanModelJSON strips markdown fences the model may wrap its output in
// despite instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}

		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
