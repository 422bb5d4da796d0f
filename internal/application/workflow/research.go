package workflow

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mealforge/v1/internal/domain/workflow"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"github.com/mealforge/v1/internal/ports/outbound"
	apperrors "github.com/mealforge/v1/pkg/errors"
)

// ResearchAugmenter issues a small bounded set of search queries derived
// from the draft recipe and feeds successful results into a tip-enhancement
// call. Partial or total search failure never fails the run.
type ResearchAugmenter struct {
	gateway outbound.ModelGateway
	search  outbound.SearchService
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger

	maxQueries int
	maxResults int
	maxTips    int
}

// NewResearchAugmenter creates the research stage.
func NewResearchAugmenter(
	gateway outbound.ModelGateway,
	search outbound.SearchService,
	maxQueries, maxResults, maxTips int,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *ResearchAugmenter {
	return &ResearchAugmenter{
		gateway:    gateway,
		search:     search,
		metrics:    metrics,
		logger:     logger.Named("research-augmenter"),
		maxQueries: maxQueries,
		maxResults: maxResults,
		maxTips:    maxTips,
	}
}

// Execute runs query synthesis, search execution, and tip enhancement.
// Re-entry after the enhancement latch is set is a guaranteed no-op.
func (a *ResearchAugmenter) Execute(ctx context.Context, state *workflow.State) {
	if state.Enhancement == workflow.EnhancementApplied {
		a.logger.Debug("Enhancement already applied, skipping",
			zap.String("run_id", state.RunID.String()))
		return
	}

	state.SearchResults = a.executeQueries(ctx, state)
	state.SearchEnhanced = len(state.SearchResults) > 0

	if !state.SearchEnhanced {
		state.Enhancement = workflow.EnhancementSkipped
		return
	}

	a.enhanceTips(ctx, state)
}

// buildQueries synthesizes up to 3 queries; callers issue only the first
// maxQueries to stay under provider rate limits.
func (a *ResearchAugmenter) buildQueries(state *workflow.State) []string {
	var queries []string

	if state.DraftRecipe != nil && state.DraftRecipe.Name != "" {
		queries = append(queries, fmt.Sprintf("%s recipe cooking tips best practices", state.DraftRecipe.Name))
	}

	if len(state.Request.Ingredients) > 0 {
		main := state.Request.Ingredients
		if len(main) > 3 {
			main = main[:3]
		}
		queries = append(queries, fmt.Sprintf("cooking techniques %s %s cuisine",
			strings.Join(main, " "), state.Request.CuisinePreference))
	}

	if len(state.Request.AvailableAppliances) > 0 {
		queries = append(queries, fmt.Sprintf("cooking tips %s techniques professional chef",
			strings.Join(state.Request.AvailableAppliances, " ")))
	}

	return queries
}

// executeQueries issues the queries sequentially. An authentication-class
// failure aborts the remaining queries for the run; other failures move on
// to the next query.
func (a *ResearchAugmenter) executeQueries(ctx context.Context, state *workflow.State) []workflow.SearchResult {
	queries := a.buildQueries(state)
	if len(queries) > a.maxQueries {
		queries = queries[:a.maxQueries]
	}

	var results []workflow.SearchResult
	for _, query := range queries {
		hits, err := a.search.Search(ctx, query, a.maxResults)
		if err != nil {
			if apperrors.Is(err, apperrors.CodeSearchAuthFailure) {
				a.logger.Warn("Search credential rejected, aborting remaining queries",
					zap.Error(err))
				a.metrics.RecordSearchQuery("auth_error")
				break
			}
			a.logger.Warn("Search query failed, continuing with next",
				zap.String("query", query),
				zap.Error(err))
			a.metrics.RecordSearchQuery("error")
			continue
		}

		a.metrics.RecordSearchQuery("ok")
		for _, hit := range hits {
			results = append(results, workflow.SearchResult{
				Title:   hit.Title,
				Content: hit.Content,
				URL:     hit.URL,
				Query:   query,
			})
		}
	}

	return results
}

// enhanceTips merges model-suggested tips derived from search results into
// the existing tips. Any failure is swallowed; tips stay as they were.
func (a *ResearchAugmenter) enhanceTips(ctx context.Context, state *workflow.State) {
	contextBlock := buildSearchContext(state.SearchResults, 3)
	if contextBlock == "" {
		state.Enhancement = workflow.EnhancementSkipped
		return
	}

	var enhanced []string
	err := a.gateway.CompleteStructured(ctx,
		enhancementSystemPrompt,
		enhancementUserPrompt(state, contextBlock),
		outbound.ProfilePrecise,
		&enhanced,
	)
	if err != nil || len(enhanced) == 0 {
		a.logger.Warn("Tip enhancement failed, keeping existing tips",
			zap.Error(err))
		state.Enhancement = workflow.EnhancementSkipped
		return
	}

	state.CookingTips = mergeTips(state.CookingTips, enhanced, a.maxTips)
	state.Enhancement = workflow.EnhancementApplied

	a.logger.Info("Cooking tips enhanced from search results",
		zap.String("run_id", state.RunID.String()),
		zap.Int("tips", len(state.CookingTips)))
}

// buildSearchContext concatenates up to limit result contents with their
// source titles into one context block.
func buildSearchContext(results []workflow.SearchResult, limit int) string {
	var blocks []string
	for _, r := range results {
		if r.Content == "" {
			continue
		}
		title := r.Title
		if title == "" {
			title = "Unknown"
		}
		blocks = append(blocks, fmt.Sprintf("Source: %s\n%s", title, r.Content))
		if len(blocks) == limit {
			break
		}
	}
	return strings.Join(blocks, "\n\n")
}
