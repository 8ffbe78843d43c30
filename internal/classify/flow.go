package classify

import (
	"fmt"

	"github.com/paramount/restobid/internal/models"
	"github.com/paramount/restobid/internal/refdata"
)

// State identifies where a collector is in the assessment flow.
type State int

// Collector states. A flow starts at SelectingDamageType, walks the
// damage-type script one question at a time, and terminates at Complete.
const (
	StateSelectingDamageType State = iota
	StateAnswering
	StateComplete
)

// Collector walks a damage-type question script in order, accumulating one
// answer per question index. Earlier answers can be revisited and
// overwritten by navigating backward; forward answers stay recorded until
// re-confirmed by advancing over them again. Reaching the end of the script
// is terminal for the flow instance; starting over creates a fresh one.
//
// The collector is the only writer of its answer set and is not safe for
// concurrent use; the flow is strictly sequential and user-driven.
type Collector struct {
	ds         *refdata.Dataset
	state      State
	damageType models.DamageType
	script     []refdata.Question
	index      int
	answers    models.AnswerSet
}

// NewCollector creates a collector in the damage type selection state.
func NewCollector(ds *refdata.Dataset) *Collector {
	return &Collector{ds: ds, state: StateSelectingDamageType}
}

// State returns the current flow state.
func (c *Collector) State() State { return c.state }

// DamageType returns the selected damage type, empty until one is chosen.
func (c *Collector) DamageType() models.DamageType { return c.damageType }

// Start selects the damage type and enters the first question with an empty
// answer set. Returns a ValidationError if no script exists for the type.
func (c *Collector) Start(damageType models.DamageType) error {
	script, err := c.ds.Script(damageType)
	if err != nil {
		return err
	}
	c.damageType = damageType
	c.script = script
	c.index = 0
	c.answers = make(models.AnswerSet, len(script))
	c.state = StateAnswering
	return nil
}

// Question returns the current question along with its index and the script
// length, for progress display.
func (c *Collector) Question() (refdata.Question, int, int, error) {
	if c.state != StateAnswering {
		return refdata.Question{}, 0, 0, fmt.Errorf("no question pending in state %d", c.state)
	}
	return c.script[c.index], c.index, len(c.script), nil
}

// Answer returns the previously recorded answer for the current question,
// if the user navigated back over it.
func (c *Collector) Answer() (models.Answer, bool) {
	answer, ok := c.answers[c.index]
	return answer, ok
}

// SubmitAnswer records the selected option for the current question,
// overwriting any prior answer at that index, and advances. Answering the
// final question moves the flow to Complete.
func (c *Collector) SubmitAnswer(optionIndex int) error {
	if c.state != StateAnswering {
		return fmt.Errorf("cannot answer in state %d", c.state)
	}
	question := c.script[c.index]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return &models.ValidationError{
			Field:  "option",
			Reason: fmt.Sprintf("option %d is out of range for question %d", optionIndex, c.index),
		}
	}

	option := question.Options[optionIndex]
	c.answers[c.index] = models.Answer{
		Question: question.Prompt,
		Selected: option.Label,
		Data:     option.Data,
	}

	c.index++
	if c.index == len(c.script) {
		c.state = StateComplete
	}
	return nil
}

// GoBack steps to the previous question without discarding its recorded
// answer. Going back from the first question returns to damage type
// selection and discards the nascent answer set.
func (c *Collector) GoBack() {
	if c.state != StateAnswering {
		return
	}
	if c.index == 0 {
		c.state = StateSelectingDamageType
		c.damageType = ""
		c.script = nil
		c.answers = nil
		return
	}
	c.index--
}

// Answers returns the accumulated answer set. Valid once Complete.
func (c *Collector) Answers() models.AnswerSet { return c.answers }

// Classify runs the classification engine over the completed answer set.
func (c *Collector) Classify() (*models.Classification, error) {
	if c.state != StateComplete {
		return nil, fmt.Errorf("classification requires a completed flow")
	}
	return Classify(c.ds, c.damageType, c.answers)
}
