package llmgateway

import "github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"

// ModelLevel mirrors llmClient.ModelLevel's tiering vocabulary.
type ModelLevel string

const (
	LevelLow   ModelLevel = "low"
	LevelMid   ModelLevel = "middle"
	LevelHigh  ModelLevel = "high"
)

// ModelTiering decides which tier a task runs at. Grounded on
// insightify/internal/llm.InMemoryModelRegistry's role/level resolution,
// simplified to this domain's fixed task set (§4.2 capability 3).
type ModelTiering interface {
	LevelFor(task llmadapter.Task) ModelLevel
}

// StaticTiering assigns a fixed level per task, honoring llmTiering=false
// by collapsing everything to LevelMid.
type StaticTiering struct {
	Enabled bool
	Levels  map[llmadapter.Task]ModelLevel
}

// DefaultTiering implements the natural split: understanding and verdict
// generation run at the high tier (they shape the final answer), mechanical
// per-source extraction and auxiliary scoring tasks run cheaper.
func DefaultTiering(enabled bool) StaticTiering {
	return StaticTiering{
		Enabled: enabled,
		Levels: map[llmadapter.Task]ModelLevel{
			llmadapter.TaskUnderstand:        LevelHigh,
			llmadapter.TaskVerdict:           LevelHigh,
			llmadapter.TaskRefinement:        LevelMid,
			llmadapter.TaskExtractEvidence:   LevelMid,
			llmadapter.TaskRelevance:         LevelLow,
			llmadapter.TaskSimilarity:        LevelLow,
			llmadapter.TaskEvidenceQuality:   LevelLow,
			llmadapter.TaskVerdictValidation: LevelLow,
			llmadapter.TaskSearchRelevance:   LevelLow,
		},
	}
}

func (t StaticTiering) LevelFor(task llmadapter.Task) ModelLevel {
	if !t.Enabled {
		return LevelMid
	}
	if level, ok := t.Levels[task]; ok {
		return level
	}
	return LevelMid
}
