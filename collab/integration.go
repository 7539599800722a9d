// ABOUTME: Outbound integration actions (Slack post, Drive upload and the like)
// ABOUTME: The simulated client only acts on connected integrations
package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/echoes/models"
)

// IntegrationClient performs an action against a third-party integration.
type IntegrationClient interface {
	Trigger(ctx context.Context, integration models.Integration, action string, payload map[string]any) error
}

// SimulatedIntegrationClient waits Latency and succeeds for connected
// integrations.
type SimulatedIntegrationClient struct {
	Latency Latency
}

// NewSimulatedIntegrationClient waits a fixed second per action.
func NewSimulatedIntegrationClient() *SimulatedIntegrationClient {
	return &SimulatedIntegrationClient{Latency: Fixed(time.Second)}
}

func (s *SimulatedIntegrationClient) Trigger(ctx context.Context, integration models.Integration, action string, _ map[string]any) error {
	if integration.Status != models.IntegrationConnected {
		return fmt.Errorf("%w: %s", ErrNotConnected, integration.ID)
	}
	if action == "" {
		return fmt.Errorf("empty action for %s", integration.ID)
	}
	return wait(ctx, s.Latency)
}
