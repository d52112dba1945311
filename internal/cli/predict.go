package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/terraincognita07/cyclecast/internal/i18n"
	"github.com/terraincognita07/cyclecast/internal/models"
	"github.com/terraincognita07/cyclecast/internal/services"
)

var errLastPeriodStartRequired = errors.New("last period start date is required (-date)")

type PredictCommand struct {
	Model    *services.CycleModel
	I18n     *i18n.Manager
	Language string
	Stdin    io.Reader
	Stdout   io.Writer
	// Interactive enables prompts for values missing from the flags.
	Interactive bool
	Now         func() time.Time
}

func NewPredictCommand(model *services.CycleModel, i18nManager *i18n.Manager, language string, stdin *os.File, stdout io.Writer) *PredictCommand {
	return &PredictCommand{
		Model:       model,
		I18n:        i18nManager,
		Language:    language,
		Stdin:       stdin,
		Stdout:      stdout,
		Interactive: isTerminal(stdin),
		Now:         time.Now,
	}
}

type predictFlags struct {
	date        string
	cycleLength int
	day         int
	irregular   bool
	curve       bool
}

func (command *PredictCommand) Run(args []string) error {
	flags := predictFlags{}
	flagSet := flag.NewFlagSet("predict", flag.ContinueOnError)
	flagSet.SetOutput(command.Stdout)
	flagSet.StringVar(&flags.date, "date", "", "last period start date (YYYY-MM-DD)")
	flagSet.IntVar(&flags.cycleLength, "cycle-length", 0, "average cycle length in days")
	flagSet.IntVar(&flags.day, "day", 0, "cycle day to check; derived from today when omitted")
	flagSet.BoolVar(&flags.irregular, "irregular", false, "allow extended cycles up to 90 days")
	flagSet.BoolVar(&flags.curve, "curve", false, "print the full-cycle hormone table")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if err := command.fillMissing(&flags); err != nil {
		return err
	}

	today := command.Now()
	params, err := command.Model.ValidateCycleInput(services.CycleInput{
		LastPeriodStart: flags.date,
		CycleLength:     flags.cycleLength,
		Day:             flags.day,
		Irregular:       flags.irregular,
		Today:           time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return errors.New(command.describeError(err))
	}

	prediction, err := command.Model.Predict(params)
	if err != nil {
		return errors.New(command.describeError(err))
	}

	return command.render(prediction, flags.curve)
}

// fillMissing prompts for unset values on a terminal. Otherwise the cycle
// length falls back to the default and the day is derived from today.
func (command *PredictCommand) fillMissing(flags *predictFlags) error {
	if !command.Interactive {
		if strings.TrimSpace(flags.date) == "" {
			return errLastPeriodStartRequired
		}
		if flags.cycleLength == 0 {
			flags.cycleLength = models.DefaultCycleLength
		}
		return nil
	}

	reader := bufio.NewReader(command.Stdin)
	if strings.TrimSpace(flags.date) == "" {
		answer, err := command.prompt(reader, "Enter the start date of your last period (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		if answer == "" {
			return errLastPeriodStartRequired
		}
		flags.date = answer
	}

	if flags.cycleLength == 0 {
		minLength, maxLength := command.Model.Constants().CycleLengthBounds(flags.irregular)
		question := fmt.Sprintf("Enter your average cycle length in days (%d-%d) [%d]: ", minLength, maxLength, models.DefaultCycleLength)
		value, err := command.promptInt(reader, question, models.DefaultCycleLength)
		if err != nil {
			return err
		}
		flags.cycleLength = value
	}

	if flags.day == 0 {
		value, err := command.promptInt(reader, fmt.Sprintf("Enter a day (1-%d) to check hormone levels [today]: ", flags.cycleLength), 0)
		if err != nil {
			return err
		}
		flags.day = value
	}

	return nil
}

func (command *PredictCommand) prompt(reader *bufio.Reader, question string) (string, error) {
	if _, err := fmt.Fprint(command.Stdout, question); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (command *PredictCommand) promptInt(reader *bufio.Reader, question string, fallback int) (int, error) {
	answer, err := command.prompt(reader, question)
	if err != nil {
		return 0, err
	}
	if answer == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(answer)
	if err != nil {
		return 0, errors.New(command.I18n.Translate(command.Language, "error.invalid_input"))
	}
	return value, nil
}

func (command *PredictCommand) render(prediction models.CyclePrediction, withCurve bool) error {
	out := &errWriter{writer: command.Stdout}
	params := prediction.Parameters

	out.printf("On day %d of your cycle:\n", params.Day)
	out.printf(" - Estrogen Level: %.2f\n", prediction.Hormones.Estrogen)
	out.printf(" - Progesterone Level: %.2f\n", prediction.Hormones.Progesterone)
	out.printf("\nCurrent Phase: %s\n", command.I18n.Translate(command.Language, "phase."+prediction.Phase.Key()))

	window := prediction.Ovulation
	out.printf("\nPredicted Ovulation Day: %d\n", window.OvulationDay)
	out.printf("Estimated Ovulation Window: Days %d to %d\n", window.WindowStart, window.WindowEnd)
	out.printf("Peak Estrogen Levels (indicator of ovulation):\n")
	for index, day := range window.Days() {
		if index >= len(window.PeakEstrogen) {
			break
		}
		out.printf("Day %d: Estrogen Level ~ %.2f\n", day, window.PeakEstrogen[index])
	}

	out.printf("\nPredicted Next Period Start Date: %s\n", prediction.NextPeriod.Format())
	if prediction.ExtendedCycle {
		out.printf("\n%s\n", command.I18n.Translatef(command.Language, "notice.extended_cycle", params.CycleLength))
	}

	if withCurve {
		out.printf("\n")
		table := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(table, "Day\tEstrogen\tProgesterone\t")
		for _, sample := range prediction.Curve {
			fmt.Fprintf(table, "%d\t%.2f\t%.2f\t\n", sample.Day, sample.Estrogen, sample.Progesterone)
		}
		if err := table.Flush(); err != nil {
			return err
		}
	}

	return out.err
}

func (command *PredictCommand) describeError(err error) string {
	var rangeErr *services.RangeError
	switch {
	case errors.As(err, &rangeErr):
		return command.I18n.Translatef(command.Language, "error."+rangeErr.Field+"_out_of_range", rangeErr.Min, rangeErr.Max)
	case errors.Is(err, services.ErrInvalidDateFormat):
		return command.I18n.Translate(command.Language, "error.invalid_date_format")
	default:
		return err.Error()
	}
}

// errWriter keeps the first write error so rendering can stay linear.
type errWriter struct {
	writer io.Writer
	err    error
}

func (out *errWriter) Write(p []byte) (int, error) {
	if out.err != nil {
		return 0, out.err
	}
	n, err := out.writer.Write(p)
	out.err = err
	return n, err
}

func (out *errWriter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(out, format, args...)
}
