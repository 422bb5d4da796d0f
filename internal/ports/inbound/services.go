// Package inbound defines the interfaces for inbound ports (primary/driving
// adapters). These are the use cases the application exposes.
package inbound

import (
	"context"

	"github.com/mealforge/v1/internal/domain/workflow"
)

// RecipeWorkflowService is the recipe generation use case. Generate runs the
// whole pipeline for one request and returns the terminal workflow state.
type RecipeWorkflowService interface {
	Generate(ctx context.Context, req workflow.Request) (*workflow.State, error)
}
