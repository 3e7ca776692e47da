package generator

import "fmt"

// Brief length bounds, measured in runes.
const (
	MinChars = 20
	MaxChars = 2000
)

// JSON field names the model must emit.
const (
	FieldMarketingCopy  = "marketingCopy"
	FieldVisualStrategy = "visualStrategy"
	FieldTargetAudience = "targetAudience"
)

// RequiredFields lists the strategy fields in display order.
var RequiredFields = []string{FieldMarketingCopy, FieldVisualStrategy, FieldTargetAudience}

// MarketingStrategy is the three-part result of a successful generation.
type MarketingStrategy struct {
	MarketingCopy  string `json:"marketingCopy"`
	VisualStrategy string `json:"visualStrategy"`
	TargetAudience string `json:"targetAudience"`
}

// Section returns the text of one field by its JSON name.
func (m MarketingStrategy) Section(name string) (string, error) {
	switch name {
	case FieldMarketingCopy:
		return m.MarketingCopy, nil
	case FieldVisualStrategy:
		return m.VisualStrategy, nil
	case FieldTargetAudience:
		return m.TargetAudience, nil
	default:
		return "", fmt.Errorf("unknown section %q", name)
	}
}

// SectionTitle is the human label of a field, e.g. "Marketing copy".
func SectionTitle(name string) string {
	switch name {
	case FieldMarketingCopy:
		return "Marketing copy"
	case FieldVisualStrategy:
		return "Visual strategy"
	case FieldTargetAudience:
		return "Target audience"
	default:
		return name
	}
}

// Phase is the coarse workflow state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGenerating
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerating:
		return "generating"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText lets Phase serialize as its name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is an immutable snapshot of a Controller.
// Strategy is set only in PhaseSucceeded, Err and Reason only in PhaseFailed.
// Seq grows with every transition; of two snapshots the higher Seq is newer.
type State struct {
	Phase    Phase              `json:"phase"`
	Strategy *MarketingStrategy `json:"strategy,omitempty"`
	Err      error              `json:"-"`
	Reason   string             `json:"reason,omitempty"`
	Token    uint64             `json:"token"`
	Seq      uint64             `json:"seq"`
}
