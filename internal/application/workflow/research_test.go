package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mealforge/v1/internal/domain/recipe"
	"github.com/mealforge/v1/internal/domain/workflow"
	"github.com/mealforge/v1/internal/ports/outbound"
	apperrors "github.com/mealforge/v1/pkg/errors"
)

func newResearchAugmenter(t *testing.T, gateway *mockGateway, search *mockSearchService) *ResearchAugmenter {
	t.Helper()
	return NewResearchAugmenter(gateway, search, 2, 2, 8, testMetrics(t), testLogger(t))
}

func researchState() *workflow.State {
	state := testState()
	state.DraftRecipe = &recipe.Recipe{Name: "Chicken Rice Bowl"}
	state.CookingTips = []string{"Rinse the rice"}
	return state
}

func TestResearchAugmenter_AppliedLatchIsNoOp(t *testing.T) {
	gateway := new(mockGateway)
	search := new(mockSearchService)
	a := newResearchAugmenter(t, gateway, search)

	state := researchState()
	state.Enhancement = workflow.EnhancementApplied
	state.CookingTips = []string{"Already enhanced"}
	before := *state

	a.Execute(context.Background(), state)

	assert.Equal(t, before, *state)
	search.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	gateway.AssertNotCalled(t, "CompleteStructured", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResearchAugmenter_NoResultsSkips(t *testing.T) {
	gateway := new(mockGateway)
	search := new(mockSearchService)
	search.On("Search", mock.Anything, mock.Anything, 2).Return([]outbound.SearchHit{}, nil)

	a := newResearchAugmenter(t, gateway, search)
	state := researchState()

	a.Execute(context.Background(), state)

	assert.False(t, state.SearchEnhanced)
	assert.Equal(t, workflow.EnhancementSkipped, state.Enhancement)
	assert.Equal(t, []string{"Rinse the rice"}, state.CookingTips)
	search.AssertNumberOfCalls(t, "Search", 2)
}

func TestResearchAugmenter_AuthFailureAbortsRemainingQueries(t *testing.T) {
	gateway := new(mockGateway)
	search := new(mockSearchService)
	search.On("Search", mock.Anything, mock.Anything, 2).
		Return(nil, apperrors.NewSearchAuthFailure(errors.New("401")))

	a := newResearchAugmenter(t, gateway, search)
	state := researchState()

	a.Execute(context.Background(), state)

	search.AssertNumberOfCalls(t, "Search", 1)
	assert.False(t, state.SearchEnhanced)
	assert.Equal(t, workflow.EnhancementSkipped, state.Enhancement)
	assert.False(t, state.Failed())
}

func TestResearchAugmenter_TransientFailureContinues(t *testing.T) {
	gateway := new(mockGateway)
	search := new(mockSearchService)
	search.On("Search", mock.Anything, mock.Anything, 2).
		Return(nil, apperrors.NewSearchFailure("q", errors.New("timeout"))).Once()
	search.On("Search", mock.Anything, mock.Anything, 2).
		Return([]outbound.SearchHit{{Title: "Tips", Content: "Let the chicken rest"}}, nil).Once()
	gateway.On("CompleteStructured", mock.Anything, mock.Anything, mock.Anything, outbound.ProfilePrecise, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(4).(*[]string)
			*out = []string{"Let the chicken rest before slicing"}
		}).
		Return(nil)

	a := newResearchAugmenter(t, gateway, search)
	state := researchState()

	a.Execute(context.Background(), state)

	search.AssertNumberOfCalls(t, "Search", 2)
	assert.True(t, state.SearchEnhanced)
	assert.Equal(t, workflow.EnhancementApplied, state.Enhancement)
	assert.Equal(t, []string{"Rinse the rice", "Let the chicken rest before slicing"}, state.CookingTips)
}

func TestResearchAugmenter_EnhancementFailureKeepsTips(t *testing.T) {
	gateway := new(mockGateway)
	search := new(mockSearchService)
	search.On("Search", mock.Anything, mock.Anything, 2).
		Return([]outbound.SearchHit{{Title: "Tips", Content: "content"}}, nil)
	gateway.On("CompleteStructured", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("model unavailable"))

	a := newResearchAugmenter(t, gateway, search)
	state := researchState()

	a.Execute(context.Background(), state)

	assert.True(t, state.SearchEnhanced)
	assert.Equal(t, workflow.EnhancementSkipped, state.Enhancement)
	assert.Equal(t, []string{"Rinse the rice"}, state.CookingTips)
}

func TestBuildSearchContext(t *testing.T) {
	results := []workflow.SearchResult{
		{Title: "A", Content: "first"},
		{Content: "second"},
		{Title: "C", Content: ""},
		{Title: "D", Content: "fourth"},
		{Title: "E", Content: "fifth"},
	}

	block := buildSearchContext(results, 3)

	assert.Contains(t, block, "Source: A\nfirst")
	assert.Contains(t, block, "Source: Unknown\nsecond")
	assert.Contains(t, block, "Source: D\nfourth")
	assert.NotContains(t, block, "fifth")
}
