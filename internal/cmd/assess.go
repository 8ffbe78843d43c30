package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/paramount/restobid/internal/classify"
	"github.com/paramount/restobid/internal/display"
	"github.com/paramount/restobid/internal/lineitems"
	"github.com/paramount/restobid/internal/models"
)

// NewAssessCommand creates and returns the assess subcommand
func NewAssessCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assess <project>",
		Short: "Run the interactive damage assessment for a project",
		Long: `Walks the IICRC question script for a damage type, classifies the loss,
and generates the initial rough line items. Re-running the assessment
replaces the classification and regenerates the affected line items.

Enter 'b' at any question to go back, 'q' to quit without saving.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := NewDefaultMenuReader(cmd.InOrStdin())
			return runAssess(app, args[0], reader, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
}

func runAssess(app *App, ref string, reader MenuReader, output io.Writer) error {
	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := contextForStore()
	project, err := st.FindProject(ctx, ref)
	if err != nil {
		return err
	}

	cls, err := collectClassification(app, reader, output)
	if err != nil {
		return err
	}
	if cls == nil {
		fmt.Fprintln(output, "Assessment cancelled.")
		return nil
	}

	if len(cls.MissingDefinitions) > 0 {
		for _, key := range cls.MissingDefinitions {
			app.Logger.LogWarn(fmt.Sprintf("reference dataset has no definition for %s", key))
		}
		display.WarnMissingDefinitions(cls.MissingDefinitions).Display(output)
	}

	display.Classification(output, cls)

	project.DamageType = cls.DamageType
	project.Classification = cls

	// Rough items immediately; room items regenerate as rooms are measured.
	items, err := lineitems.Generate(app.Dataset, cls)
	if err != nil {
		return err
	}
	project.UpsertLineItems(items)
	for i := range project.Rooms {
		roomItems, err := lineitems.GenerateForRoom(app.Dataset, cls, &project.Rooms[i])
		if err != nil {
			return err
		}
		project.UpsertLineItems(roomItems)
	}

	if err := st.SaveProject(ctx, project); err != nil {
		return err
	}

	app.Logger.LogInfo(fmt.Sprintf("assessed project %s as %s damage", project.Name, cls.DamageType))
	if len(project.Rooms) == 0 {
		fmt.Fprintf(output, "%s\n", lineitems.RoughEstimateNote)
	}
	fmt.Fprintf(output, "Generated %d line items. Next: restobid room add %q\n", len(items), project.Name)
	return nil
}

// collectClassification drives the collector state machine against user
// input. Returns nil without error when the user quits.
func collectClassification(app *App, reader MenuReader, output io.Writer) (*models.Classification, error) {
	collector := classify.NewCollector(app.Dataset)

	for collector.State() != classify.StateComplete {
		switch collector.State() {
		case classify.StateSelectingDamageType:
			damageType, quit, err := selectDamageType(reader, output)
			if err != nil {
				return nil, err
			}
			if quit {
				return nil, nil
			}
			if err := collector.Start(damageType); err != nil {
				return nil, err
			}

		case classify.StateAnswering:
			question, index, total, err := collector.Question()
			if err != nil {
				return nil, err
			}

			fmt.Fprintln(output)
			display.QuestionProgress(output, index, total, question.Prompt)
			for i, option := range question.Options {
				marker := " "
				if prior, ok := collector.Answer(); ok && prior.Selected == option.Label {
					marker = color.New(color.FgGreen).Sprint("*")
				}
				fmt.Fprintf(output, " %s %d. %s\n", marker, i+1, option.Label)
			}

			choice, err := readMenuChoice(output, reader, len(question.Options))
			if err != nil {
				return nil, err
			}
			switch {
			case choice.Quit:
				return nil, nil
			case choice.Back:
				collector.GoBack()
			default:
				if err := collector.SubmitAnswer(choice.Index); err != nil {
					return nil, err
				}
			}
		}
	}

	return collector.Classify()
}

// selectDamageType prompts for the damage type.
func selectDamageType(reader MenuReader, output io.Writer) (models.DamageType, bool, error) {
	types := []models.DamageType{models.DamageWater, models.DamageFire, models.DamageMold}

	fmt.Fprintln(output, color.New(color.Bold).Sprint("What type of damage are you assessing?"))
	for i, t := range types {
		fmt.Fprintf(output, "  %d. %s\n", i+1, t.Label())
	}

	for {
		fmt.Fprintf(output, "Select (1-%d) or 'q' to quit: ", len(types))
		input, err := readLine(reader)
		if err != nil {
			return "", false, err
		}
		if strings.EqualFold(input, "q") {
			return "", true, nil
		}
		for i, t := range types {
			if input == fmt.Sprint(i+1) || strings.EqualFold(input, string(t)) {
				return t, false, nil
			}
		}
		fmt.Fprintln(output, "Invalid selection. Please try again.")
	}
}
