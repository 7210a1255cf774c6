package life

import (
	"strconv"
	"strings"

	"mad-life/internal/core"
)

// Parameters implements core.ParameterProvider.
func (l *Life) Parameters() core.ParameterSnapshot {
	placed := make([]string, len(l.cfg.Patterns))
	for i, p := range l.cfg.Patterns {
		placed[i] = p.String()
	}
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", l.cfg.Width),
				intParam("h", "Height", l.cfg.Height),
				stringParam("grid", "Representation", string(l.kind)),
				stringParam("rule", "Rule", ruleName(l)),
			},
		},
		{
			Name: "Termination",
			Params: []core.Parameter{
				intParam("history", "History window", l.history.Capacity()),
				stringParam("history_policy", "History policy", l.history.Policy().String()),
				intParam("max_generations", "Max generations", l.cfg.MaxGenerations),
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				int64Param("seed", "Seed", l.seedUsed),
				floatParam("density", "Density", l.cfg.Density),
				stringParam("patterns", "Patterns", strings.Join(placed, ";")),
				intParam("workers", "Workers", l.cfg.Workers),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func ruleName(l *Life) string {
	if s, ok := l.rules.(interface{ String() string }); ok {
		return s.String()
	}
	return l.cfg.Rule
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
