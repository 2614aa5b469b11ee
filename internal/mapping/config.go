// Package mapping holds the rule configuration and the pure resolvers that
// turn classified nodes and edges into ArchiMate target types.
package mapping

import "fmt"

// Default ArchiMate exchange constants, used when a configuration document
// does not override them.
const (
	DefaultNamespace      = "http://www.opengroup.org/xsd/archimate/3.0/"
	DefaultSchemaLocation = "http://www.opengroup.org/xsd/archimate/3.0/ http://www.opengroup.org/xsd/archimate/3.0/archimate3_Diagram.xsd"
)

// NodeRule maps a classification family or type keyword to a target element
// type, carrying only the listed attribute names into the model.
type NodeRule struct {
	Key        string
	Type       string
	Attributes []string
}

// RelationshipRule maps an edge label keyword to a target relationship type.
type RelationshipRule struct {
	Key        string
	Type       string
	Attributes []string
}

// Config is the rule table for one conversion. It is loaded once and
// treated as immutable; resolvers only read it, so a single Config is safe
// to share across concurrent conversions.
type Config struct {
	NodeRules               []NodeRule
	RelationshipRules       []RelationshipRule
	DefaultNodeType         string
	DefaultRelationshipType string
	Namespace               string
	SchemaLocation          string
}

// ConfigError reports a missing or unparseable configuration document.
type ConfigError struct {
	Filename string
	Message  string
}

func (e *ConfigError) Error() string {
	if e.Filename == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config %s: %s", e.Filename, e.Message)
}

// NodeRule returns the first node rule with the given key.
func (c *Config) NodeRule(key string) (NodeRule, bool) {
	for _, r := range c.NodeRules {
		if r.Key == key {
			return r, true
		}
	}
	return NodeRule{}, false
}

// RelationshipRule returns the first relationship rule with the given key.
func (c *Config) RelationshipRule(key string) (RelationshipRule, bool) {
	for _, r := range c.RelationshipRules {
		if r.Key == key {
			return r, true
		}
	}
	return RelationshipRule{}, false
}

func (c *Config) validate(filename string) error {
	if c.DefaultNodeType == "" {
		return &ConfigError{Filename: filename, Message: "defaults.node_type is required"}
	}
	if c.DefaultRelationshipType == "" {
		return &ConfigError{Filename: filename, Message: "defaults.relationship_type is required"}
	}
	return nil
}

// DefaultConfig mirrors the converter's built-in rule table, applied when no
// configuration document is supplied.
func DefaultConfig() *Config {
	labelDesc := []string{"label", "description"}
	labelOnly := []string{"label"}
	return &Config{
		NodeRules: []NodeRule{
			{Key: "application", Type: "application-component", Attributes: labelDesc},
			{Key: "business", Type: "business-actor", Attributes: labelDesc},
			{Key: "technology", Type: "technology-node", Attributes: labelDesc},
			{Key: "aws", Type: "technology-node", Attributes: labelDesc},
			{Key: "azurerm", Type: "technology-node", Attributes: labelDesc},
			{Key: "google", Type: "technology-node", Attributes: labelDesc},
			{Key: "variable", Type: "business-object", Attributes: labelDesc},
			{Key: "data", Type: "application-data-object", Attributes: labelDesc},
		},
		RelationshipRules: []RelationshipRule{
			{Key: "uses", Type: "serving-relationship", Attributes: labelOnly},
			{Key: "flows", Type: "flow-relationship", Attributes: labelOnly},
			{Key: "depends", Type: "dependency-relationship", Attributes: labelOnly},
			{Key: "creates", Type: "realization-relationship", Attributes: labelOnly},
			{Key: "triggers", Type: "triggering-relationship", Attributes: labelOnly},
			{Key: "composition", Type: "composition-relationship", Attributes: labelOnly},
			{Key: "access", Type: "access-relationship", Attributes: labelOnly},
		},
		DefaultNodeType:         "application-component",
		DefaultRelationshipType: "serving-relationship",
		Namespace:               DefaultNamespace,
		SchemaLocation:          DefaultSchemaLocation,
	}
}
