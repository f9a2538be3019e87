package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/dashboard"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

func testState() *dashboard.State {
	s := dashboard.DefaultState()
	s.Positions = []dashboard.Position{
		{ID: "p1", Name: "Kiwi TD", Sleeve: "Defensive", Type: dashboard.TypeTermDeposit, Issuer: "Kiwibank",
			ValueNZD: decimal.NewFromInt(20000), Currency: "NZD", Tags: []string{}},
		{ID: "p2", Name: "Everyday", Sleeve: "Liquidity", Type: dashboard.TypeCash, Issuer: "ASB",
			ValueNZD: decimal.NewFromInt(5000), Currency: "NZD", Tags: []string{"cash"}},
	}
	return s
}

func loader(s *dashboard.State) StateLoader {
	return func(context.Context) (*dashboard.State, error) { return s, nil }
}

func TestQuery(t *testing.T) {
	s := testState()
	tests := []struct {
		path string
		want string
	}{
		{`$.positions[0].name`, `"Kiwi TD"`},
		{`$.sleeves[0].name`, `"Liquidity"`},
		{`$.runway.sleeveName`, `"Liquidity"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Query(s, tt.path)
			if err != nil {
				t.Fatalf("Query(%q) error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Query(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}

	if _, err := Query(s, "  "); err == nil {
		t.Error("Query(empty) succeeded, want an error")
	}
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary([]Function{positionsFunc(loader(testState())), queryFunc(loader(testState()))})

	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: "Positions", Args: map[string]any{"type": "cash"}})
	out, _ := resp.Response["output"].(string)
	if !strings.Contains(out, "Everyday") || strings.Contains(out, "Kiwi TD") {
		t.Errorf("Positions(type=cash) = %q, want only the cash account", out)
	}

	resp = lib(context.Background(), &genai.FunctionCall{ID: "2", Name: "Query", Args: map[string]any{"path": "$.version"}})
	if got, want := resp.Response["output"], "1"; got != want {
		t.Errorf("Query($.version) = %v, want %v", got, want)
	}

	resp = lib(context.Background(), &genai.FunctionCall{ID: "3", Name: "Nope"})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("unknown function response = %v, want an error", resp.Response)
	}
}

func TestReviewFunc(t *testing.T) {
	f := reviewFunc(loader(testState()))
	resp := f.Call(context.Background(), "1", map[string]any{"date": "2025-01-15"})
	out, _ := resp.Response["output"].(string)
	if !strings.Contains(out, "Monthly Investment Review: 2025-01-15") {
		t.Errorf("Review output = %q, want the review title", out)
	}

	resp = f.Call(context.Background(), "2", map[string]any{"date": "not a date"})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Review with an invalid date = %v, want an error", resp.Response)
	}
}

func TestExpertCallNotStarted(t *testing.T) {
	e := NewExpert("Someone", "does things")
	e.Config = &genai.GenerateContentConfig{}
	resp := e.Call(context.Background(), "1", map[string]any{"question": "hello?"})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Call on a stopped expert = %v, want an error", resp.Response)
	}
}

func TestNewAnalyst(t *testing.T) {
	a := NewAnalyst(loader(testState()))
	if got, want := len(a.Config.Tools[0].FunctionDeclarations), 4; got != want {
		t.Errorf("Analyst has %d tools, want %d", got, want)
	}
	f := newFacilitator(a, NewResearcher())
	if got, want := f.Config.Tools[0].FunctionDeclarations[1].Name, "Researcher"; got != want {
		t.Errorf("second facilitator tool = %q, want %q", got, want)
	}
}
