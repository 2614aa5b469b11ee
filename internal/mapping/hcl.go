package mapping

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

var configSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "defaults"},
		{Type: "archimate"},
		{Type: "node", LabelNames: []string{"key"}},
		{Type: "relationship", LabelNames: []string{"key"}},
	},
}

var ruleSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type", Required: true},
		{Name: "attributes"},
	},
}

var defaultsSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "node_type", Required: true},
		{Name: "relationship_type", Required: true},
	},
}

var archimateSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "namespace"},
		{Name: "schema_location"},
	},
}

// Load reads a rule configuration document from disk.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Filename: path, Message: err.Error()}
	}
	return Parse(src, path)
}

// Parse decodes an HCL rule configuration document. Block order in the
// source is preserved, which is what makes the rule tables ordered.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, &ConfigError{Filename: filename, Message: diags.Error()}
	}
	content, diags := file.Body.Content(configSchema)
	if diags.HasErrors() {
		return nil, &ConfigError{Filename: filename, Message: diags.Error()}
	}

	cfg := &Config{
		Namespace:      DefaultNamespace,
		SchemaLocation: DefaultSchemaLocation,
	}
	for _, block := range content.Blocks {
		switch block.Type {
		case "defaults":
			attrs, diags := block.Body.Content(defaultsSchema)
			if diags.HasErrors() {
				return nil, &ConfigError{Filename: filename, Message: diags.Error()}
			}
			var err error
			if cfg.DefaultNodeType, err = stringValue(attrs.Attributes["node_type"], filename); err != nil {
				return nil, err
			}
			if cfg.DefaultRelationshipType, err = stringValue(attrs.Attributes["relationship_type"], filename); err != nil {
				return nil, err
			}
		case "archimate":
			attrs, diags := block.Body.Content(archimateSchema)
			if diags.HasErrors() {
				return nil, &ConfigError{Filename: filename, Message: diags.Error()}
			}
			if a, ok := attrs.Attributes["namespace"]; ok {
				v, err := stringValue(a, filename)
				if err != nil {
					return nil, err
				}
				cfg.Namespace = v
			}
			if a, ok := attrs.Attributes["schema_location"]; ok {
				v, err := stringValue(a, filename)
				if err != nil {
					return nil, err
				}
				cfg.SchemaLocation = v
			}
		case "node":
			typ, carried, err := decodeRule(block, filename)
			if err != nil {
				return nil, err
			}
			cfg.NodeRules = append(cfg.NodeRules, NodeRule{
				Key: block.Labels[0], Type: typ, Attributes: carried,
			})
		case "relationship":
			typ, carried, err := decodeRule(block, filename)
			if err != nil {
				return nil, err
			}
			cfg.RelationshipRules = append(cfg.RelationshipRules, RelationshipRule{
				Key: block.Labels[0], Type: typ, Attributes: carried,
			})
		}
	}
	if err := cfg.validate(filename); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeRule(block *hcl.Block, filename string) (typ string, carried []string, err error) {
	attrs, diags := block.Body.Content(ruleSchema)
	if diags.HasErrors() {
		return "", nil, &ConfigError{Filename: filename, Message: diags.Error()}
	}
	if typ, err = stringValue(attrs.Attributes["type"], filename); err != nil {
		return "", nil, err
	}
	if a, ok := attrs.Attributes["attributes"]; ok {
		if carried, err = stringListValue(a, filename); err != nil {
			return "", nil, err
		}
	}
	return typ, carried, nil
}

func stringValue(attr *hcl.Attribute, filename string) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", &ConfigError{Filename: filename, Message: diags.Error()}
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", &ConfigError{Filename: filename, Message: attr.Name + ": " + err.Error()}
	}
	return val.AsString(), nil
}

func stringListValue(attr *hcl.Attribute, filename string) ([]string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, &ConfigError{Filename: filename, Message: diags.Error()}
	}
	val, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, &ConfigError{Filename: filename, Message: attr.Name + ": " + err.Error()}
	}
	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		out = append(out, v.AsString())
	}
	return out, nil
}
