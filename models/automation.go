// ABOUTME: Automation workflow nodes with a config variant per node type
// ABOUTME: Encodes the variant as a plain object discriminated by the node's type field
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidNode = errors.New("invalid automation node")

type NodeType string

const (
	NodeTrigger   NodeType = "trigger"
	NodeAction    NodeType = "action"
	NodeCondition NodeType = "condition"
	NodeDelay     NodeType = "delay"
)

// NodeConfig is implemented by exactly one config struct per NodeType.
type NodeConfig interface {
	NodeType() NodeType
}

type TriggerConfig struct {
	Event string `json:"event"`
}

type ActionConfig struct {
	Action        string `json:"action"`
	IntegrationID string `json:"integrationId,omitempty"`
	Template      string `json:"template,omitempty"`
}

type ConditionConfig struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type DelayConfig struct {
	Minutes int `json:"minutes"`
}

func (TriggerConfig) NodeType() NodeType   { return NodeTrigger }
func (ActionConfig) NodeType() NodeType    { return NodeAction }
func (ConditionConfig) NodeType() NodeType { return NodeCondition }
func (DelayConfig) NodeType() NodeType     { return NodeDelay }

type AutomationNode struct {
	ID     string
	Type   NodeType
	Label  string
	X      float64
	Y      float64
	Next   []string
	Config NodeConfig
}

// Validate reports an unknown node type or a config whose variant does not
// match the node type. A node without config is valid.
func (n AutomationNode) Validate() error {
	switch n.Type {
	case NodeTrigger, NodeAction, NodeCondition, NodeDelay:
	default:
		return fmt.Errorf("%w: node %s has unknown type %q", ErrInvalidNode, n.ID, n.Type)
	}
	if n.Config != nil && n.Config.NodeType() != n.Type {
		return fmt.Errorf("%w: node %s: %s config on %s node", ErrInvalidNode, n.ID, n.Config.NodeType(), n.Type)
	}
	return nil
}

type automationNodeJSON struct {
	ID     string          `json:"id"`
	Type   NodeType        `json:"type"`
	Label  string          `json:"label"`
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Next   []string        `json:"next,omitempty"`
	Config json.RawMessage `json:"config,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (n AutomationNode) MarshalJSON() ([]byte, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	out := automationNodeJSON{ID: n.ID, Type: n.Type, Label: n.Label, X: n.X, Y: n.Y, Next: n.Next}
	if n.Config != nil {
		raw, err := json.Marshal(n.Config)
		if err != nil {
			return nil, err
		}
		out.Config = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *AutomationNode) UnmarshalJSON(data []byte) error {
	var in automationNodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var cfg NodeConfig
	switch in.Type {
	case NodeTrigger:
		cfg = &TriggerConfig{}
	case NodeAction:
		cfg = &ActionConfig{}
	case NodeCondition:
		cfg = &ConditionConfig{}
	case NodeDelay:
		cfg = &DelayConfig{}
	default:
		return fmt.Errorf("unknown automation node type: %q", in.Type)
	}

	*n = AutomationNode{ID: in.ID, Type: in.Type, Label: in.Label, X: in.X, Y: in.Y, Next: in.Next}
	if len(in.Config) == 0 || string(in.Config) == "null" {
		return nil
	}
	if err := json.Unmarshal(in.Config, cfg); err != nil {
		return fmt.Errorf("node %s config: %w", in.ID, err)
	}

	switch c := cfg.(type) {
	case *TriggerConfig:
		n.Config = *c
	case *ActionConfig:
		n.Config = *c
	case *ConditionConfig:
		n.Config = *c
	case *DelayConfig:
		n.Config = *c
	}
	return nil
}
