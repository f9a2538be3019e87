package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/docs"
	"github.com/etnz/dashboard/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user keeps a personal investment dashboard: positions grouped in sleeves with target
			allocations, a liquidity runway and upcoming maturities. They come to you to understand
			where they stand and what to do next.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.

			The user will assume that you know about their positions, ask the Analyst first to understand them.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert grounded on Google Search, for questions
// about products, issuers and rates.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert of the New Zealand savings and investment market.
		Very well aware of banks, term deposit rates, managed funds and ETFs.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert of savings and investment products, you can search and find about anything related to
			banks, issuers, term deposits, funds and their rates. You Leverage Google Search to
			ground your assertions in a solid truth.
			Amounts in the dashboard are in NZD.
				`}}},
		},
	}
}

// StateLoader returns the current dashboard state.
type StateLoader func(ctx context.Context) (*dashboard.State, error)

// NewAnalyst returns the expert reading the user's dashboard through load.
func NewAnalyst(load StateLoader) *Expert {
	lib := []Function{
		overviewFunc(load),
		reviewFunc(load),
		positionsFunc(load),
		queryFunc(load),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They read the user's investment dashboard.
		They can compute the allocation per sleeve, the drift against targets, the liquidity runway,
		upcoming maturities and the monthly review with its suggested actions.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's investment dashboard.
				You know how to use the Tools to extract relevant information about the user's positions.
				You are part of a team of experts, yours is everything about the user's dashboard. They might ask
				you questions about it, pardon their approximative language and figure out what they meant.

				Use the available tools to get information about
				  - the overview: total, allocation per sleeve, drift, runway
				  - the monthly review and its actions
				  - the positions, filtered by text, sleeve or type
				  - any field of the raw document, with a JSONPath query

				` + must(docs.GetTopic("concepts")),
			}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// respond wraps a markdown output, or an error, into a FunctionResponse.
func respond(id, name, output string, err error) *genai.FunctionResponse {
	if err != nil {
		return &genai.FunctionResponse{
			ID:       id,
			Name:     name,
			Response: map[string]any{"error": err.Error()},
		}
	}
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"output": output},
	}
}

var dateSchema = &genai.Schema{
	Type: genai.TypeString,
	Description: `The reference date, maturities are counted from it. Today is the default.
	Otherwise it uses a date format based on YYYY-MM-DD.`,
}

func overviewFunc(load StateLoader) *Func {
	const name = "Overview"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Overview computes the dashboard: total value, positions and cash accounts count,
			value, actual percentage, target and drift per sleeve, liquidity runway and upcoming maturities.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"date": dateSchema},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted overview.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args)
			if err != nil {
				return respond(id, name, "", err)
			}
			s, err := load(ctx)
			if err != nil {
				return respond(id, name, "", fmt.Errorf("could not load the dashboard: %w", err))
			}
			return respond(id, name, renderer.OverviewMarkdown(s.Overview(on), on), nil)
		},
	}
}

func reviewFunc(load StateLoader) *Func {
	const name = "Review"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Review generates the monthly review checklist: sleeve allocation table, runway,
			upcoming maturities and the suggested actions (rebalancing, maturities to handle, low runway).`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"date": dateSchema},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The review as a markdown document.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args)
			if err != nil {
				return respond(id, name, "", err)
			}
			s, err := load(ctx)
			if err != nil {
				return respond(id, name, "", fmt.Errorf("could not load the dashboard: %w", err))
			}
			o := s.Overview(on)
			return respond(id, name, renderer.ReviewMarkdown(o, dashboard.Actions(o), on), nil)
		},
	}
}

func positionsFunc(load StateLoader) *Func {
	const name = "Positions"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Positions lists the positions, largest value first, with their id, sleeve, type, issuer, value, profit or loss and maturity.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"query": {
						Type:        genai.TypeString,
						Description: "Case-insensitive text searched in the name, issuer, tags and notes.",
					},
					"sleeve": {
						Type:        genai.TypeString,
						Description: "Only list positions of this sleeve.",
					},
					"type": {
						Type:        genai.TypeString,
						Description: "Only list positions of this type: Cash, Term Deposit, Managed Fund, ETF, Shares, Crypto, Private or Other.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the positions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := load(ctx)
			if err != nil {
				return respond(id, name, "", fmt.Errorf("could not load the dashboard: %w", err))
			}
			f := dashboard.PositionFilter{
				Query:  stringArg(args, "query"),
				Sleeve: stringArg(args, "sleeve"),
			}
			if t := stringArg(args, "type"); t != "" {
				f.Type = dashboard.CoerceType(t)
			}
			return respond(id, name, renderer.PositionsMarkdown(dashboard.FilterPositions(s.Positions, f)), nil)
		},
	}
}

func queryFunc(load StateLoader) *Func {
	const name = "Query"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Query evaluates a JSONPath expression on the dashboard document.
			The document has the fields version, updatedAt, sleeves (name, target), runway (monthlyBurnNZD, sleeveName)
			and positions (id, name, sleeve, type, issuer, valueNZD, costNZD, currency, maturityDate, expectedRate, tags, notes).
			For instance $.positions[?(@.type=="Term Deposit")].valueNZD`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"path": {
						Type:        genai.TypeString,
						Description: "The JSONPath expression.",
					},
				},
				Required: []string{"path"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The JSON result.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := load(ctx)
			if err != nil {
				return respond(id, name, "", fmt.Errorf("could not load the dashboard: %w", err))
			}
			out, err := Query(s, stringArg(args, "path"))
			return respond(id, name, out, err)
		},
	}
}

// Query evaluates a JSONPath expression on the JSON document of s and returns
// the result as indented JSON.
func Query(s *dashboard.State, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}
	data, err := s.MarshalJSON()
	if err != nil {
		return "", err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", err
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return "", fmt.Errorf("invalid JSONPath %q: %w", path, err)
	}
	res, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(res), nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

func parseDate(args map[string]any) (dashboard.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return dashboard.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return dashboard.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	if strings.TrimSpace(sdate) == "" {
		return dashboard.Today(), nil
	}

	date, err := dashboard.ParseDate(sdate)
	if err != nil {
		return dashboard.Today(), fmt.Errorf("argument 'date' must be a valid YYYY-MM-DD date got %q", sdate)
	}

	return date, nil
}
