// Package cmd - analyze command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pricing-truth/adapters/llm"
	"pricing-truth/adapters/search"
	"pricing-truth/core/engine"
	"pricing-truth/core/extraction"
	"pricing-truth/core/output"
	"pricing-truth/core/types"
	"pricing-truth/internal/config"
	"pricing-truth/internal/logging"
)

var (
	productPrice   string
	productURL     string
	competitorURLs []string
	category       string
	targetCustomer string
	keyFeatures    []string
	problem        string
	decisionCtx    string
	paymentModel   string
	seatCount      int
	outputFormat   string
	outputPath     string
	evidenceFile   string
	useLLM         bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <product name>",
	Short: "Analyze a product's pricing against competitor evidence",
	Long: `Gather competitor pricing evidence and render a verdict.

Evidence comes from web search by default. Pass --evidence with a JSON
file of source documents to run fully offline against saved pages.

Examples:
  pricing-truth analyze "Acme PM" --price "$99/month"
  pricing-truth analyze "Acme PM" --price "€49/month" --competitor https://rival.com
  pricing-truth analyze "Acme PM" --price "$12/seat/month" --seats 10
  pricing-truth analyze "Acme PM" --price "$99/month" --evidence sources.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&productPrice, "price", "p", "", "current price as free text, e.g. \"$99/month\" (required)")
	analyzeCmd.Flags().StringVar(&productURL, "url", "", "product URL")
	analyzeCmd.Flags().StringSliceVar(&competitorURLs, "competitor", nil, "competitor URL to check (repeatable)")
	analyzeCmd.Flags().StringVar(&category, "category", "", "product category, e.g. \"Project Management\"")
	analyzeCmd.Flags().StringVar(&targetCustomer, "customer", "", "target customer segment")
	analyzeCmd.Flags().StringSliceVar(&keyFeatures, "feature", nil, "key product feature (repeatable)")
	analyzeCmd.Flags().StringVar(&problem, "problem", "", "problem the product solves")
	analyzeCmd.Flags().StringVar(&decisionCtx, "context", "", "who decides, when, and why")
	analyzeCmd.Flags().StringVar(&paymentModel, "payment-model", "", "payment model (subscription, per-seat, one-time, usage-based, freemium)")
	analyzeCmd.Flags().IntVar(&seatCount, "seats", 0, "seat count for per-seat pricing")
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (json, markdown)")
	analyzeCmd.Flags().StringVarP(&outputPath, "out", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().StringVar(&evidenceFile, "evidence", "", "JSON file of source documents; skips web search")
	analyzeCmd.Flags().BoolVar(&useLLM, "llm", false, "enrich the verdict narrative with an LLM")
	analyzeCmd.MarkFlagRequired("price")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	config.LoadEnv()
	cfg := config.Get()
	vocab := extraction.DefaultVocabulary()
	if rulesFile != "" {
		if err := config.ApplyRulesFile(cfg, vocab, rulesFile); err != nil {
			return fmt.Errorf("failed to apply rules file: %w", err)
		}
	}

	product := types.ProductInput{
		Name:             args[0],
		URL:              productURL,
		CurrentPrice:     productPrice,
		CompetitorURLs:   competitorURLs,
		Category:         category,
		TargetCustomer:   targetCustomer,
		KeyFeatures:      keyFeatures,
		ProblemStatement: problem,
		DecisionContext:  decisionCtx,
		PaymentModel:     paymentModel,
	}

	sources, err := gatherSources(ctx, cfg, product)
	if err != nil {
		return err
	}
	fmt.Printf("Gathered %d evidence sources\n", len(sources))

	seats := cfg.Pricing.SeatCount
	if seatCount > 0 {
		seats = seatCount
	}
	eng := engine.New(engine.Options{
		FXRates:    cfg.Pricing.FXRates,
		SeatCount:  seats,
		Vocabulary: vocab,
		Verdict:    cfg.Analysis,
	})

	verdict := eng.Analyze(product, sources)

	if useLLM || cfg.LLM.Enabled {
		verdict = enrichVerdict(ctx, cfg, verdict)
	}

	return writeReport(verdict)
}

// gatherSources loads evidence from a saved file or runs web discovery.
func gatherSources(ctx context.Context, cfg *config.Config, product types.ProductInput) ([]types.SourceDocument, error) {
	if evidenceFile != "" {
		data, err := os.ReadFile(evidenceFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read evidence file: %w", err)
		}
		var sources []types.SourceDocument
		if err := json.Unmarshal(data, &sources); err != nil {
			return nil, fmt.Errorf("failed to parse evidence file: %w", err)
		}
		return sources, nil
	}

	apiKey := config.SearchAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set; set it or pass --evidence with saved sources", config.EnvSearchAPIKey)
	}

	searchCfg := search.DefaultConfig()
	searchCfg.APIKey = apiKey
	if cfg.Search.BaseURL != "" {
		searchCfg.BaseURL = cfg.Search.BaseURL
	}
	if cfg.Search.MaxResults > 0 {
		searchCfg.MaxResults = cfg.Search.MaxResults
	}
	if cfg.Search.SearchDepth != "" {
		searchCfg.SearchDepth = cfg.Search.SearchDepth
	}
	if cfg.Search.RequestsPerSecond > 0 {
		searchCfg.RequestsPerSecond = cfg.Search.RequestsPerSecond
	}
	if cfg.Search.TimeoutSeconds > 0 {
		searchCfg.Timeout = time.Duration(cfg.Search.TimeoutSeconds) * time.Second
	}

	fmt.Println("Discovering pricing sources...")
	strategy := search.NewQueryStrategy(search.NewClient(searchCfg))
	return strategy.DiscoverPricingSources(ctx, product), nil
}

// enrichVerdict appends LLM insights, keeping the original verdict on failure.
func enrichVerdict(ctx context.Context, cfg *config.Config, verdict types.PricingVerdict) types.PricingVerdict {
	apiKey := config.LLMAPIKey()
	if apiKey == "" {
		logging.Warn(fmt.Sprintf("%s is not set; skipping LLM enrichment", config.EnvLLMAPIKey))
		return verdict
	}
	enhancer := llm.NewEnhancer(llm.NewCohereChat(apiKey, cfg.LLM.Model))
	enriched, err := enhancer.Enhance(ctx, verdict)
	if err != nil {
		logging.Warn("LLM enrichment failed, keeping deterministic verdict: " + err.Error())
		return verdict
	}
	return enriched
}

func writeReport(verdict types.PricingVerdict) error {
	format := outputFormat
	if format == "" {
		format = config.Get().Output.DefaultFormat
	}

	if outputPath == "" {
		return output.ForFormat(format).Render(os.Stdout, verdict)
	}

	var err error
	if format == string(output.FormatMarkdown) {
		err = output.WriteMarkdownReport(verdict, outputPath)
	} else {
		err = output.WriteJSONReport(verdict, outputPath)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", outputPath)
	return nil
}
