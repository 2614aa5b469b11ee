// Package classify derives semantic hints from infrastructure-graph node ids:
// the cloud provider, the resource family, and the module nesting path of
// addresses such as module.vpc.module.subnet.aws_instance.web.
package classify

import (
	"sort"
	"strings"
)

// Provider is the cloud provider inferred from a resource id.
type Provider string

const (
	ProviderAWS   Provider = "aws"
	ProviderAzure Provider = "azure"
	ProviderGCP   Provider = "gcp"
	ProviderNone  Provider = "none"
)

// Classification is derived per node, never stored on it. Unrecognized
// input classifies as {Family: "", ModulePath: nil, Provider: none}.
type Classification struct {
	Family     string
	ModulePath []string
	Provider   Provider
}

const modulePrefix = "module."

type familyRule struct {
	prefix   string
	provider Provider
	family   string
}

// Ordered longest-prefix-first so a specific family prefix is never masked
// by a shorter one.
var familyRules = buildFamilyRules()

func buildFamilyRules() []familyRule {
	rules := []familyRule{
		{"aws_", ProviderAWS, "aws"},
		{"azurerm_", ProviderAzure, "azurerm"},
		{"google_", ProviderGCP, "google"},
		{"var.", ProviderNone, "variable"},
		{"data.", ProviderNone, "data"},
		{"provider.", ProviderNone, "provider"},
		{"provider[", ProviderNone, "provider"},
		{"local.", ProviderNone, "local"},
		{"output.", ProviderNone, "output"},
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].prefix) > len(rules[j].prefix)
	})
	return rules
}

// Classify derives hints from a node id. It is total: any input yields a
// Classification, never an error.
func Classify(id string) Classification {
	cls := Classification{Provider: ProviderNone}
	rest := id
	for {
		name, tail, ok := stripModule(rest)
		if !ok {
			break
		}
		cls.ModulePath = append(cls.ModulePath, name)
		rest = tail
	}
	for _, r := range familyRules {
		if strings.HasPrefix(rest, r.prefix) {
			cls.Family = r.family
			cls.Provider = r.provider
			break
		}
	}
	return cls
}

// stripModule peels one leading "module.<name>." segment, returning the
// module name and the remainder.
func stripModule(id string) (name, rest string, ok bool) {
	if !strings.HasPrefix(id, modulePrefix) {
		return "", "", false
	}
	tail := id[len(modulePrefix):]
	dot := strings.IndexByte(tail, '.')
	if dot <= 0 || dot == len(tail)-1 {
		return "", "", false
	}
	return tail[:dot], tail[dot+1:], true
}
