package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rogerio-castellano/sourcing-desk/internal/app"
	"github.com/rogerio-castellano/sourcing-desk/internal/clock"
	"github.com/rogerio-castellano/sourcing-desk/internal/config"
	"github.com/rogerio-castellano/sourcing-desk/internal/models"
	"github.com/rogerio-castellano/sourcing-desk/internal/survey"
	"github.com/rogerio-castellano/sourcing-desk/internal/synth"
)

var (
	intakePath string
	intakePush bool
)

var intakeCmd = &cobra.Command{
	Use:   "intake",
	Short: "Run the intake survey from a file and show the synthesized dashboard",
	Long: `Walks the four intake steps with the answers from a YAML or JSON file,
stopping at the first step that is incomplete. On success the request is
submitted and the synthesized supplier offers are printed.

With --push the synthesized dashboard is published to the agent service.`,
	RunE: runIntake,
}

func init() {
	rootCmd.AddCommand(intakeCmd)

	intakeCmd.Flags().StringVarP(&intakePath, "file", "f", "", "intake answers (YAML or JSON)")
	intakeCmd.Flags().BoolVar(&intakePush, "push", false, "publish the synthesized dashboard to the agent service")
	intakeCmd.MarkFlagRequired("file")
}

// intakeFile is the on-disk form of the survey answers.
type intakeFile struct {
	Profile models.StoreProfile    `yaml:"profile"`
	Items   []models.InventoryItem `yaml:"items"`
	Budget  models.BudgetDetails   `yaml:"budget"`
}

func readIntake(r io.Reader) (intakeFile, error) {
	var in intakeFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return intakeFile{}, fmt.Errorf("failed to decode intake: %w", err)
	}
	return in, nil
}

// stepError reports a survey step that cannot be completed.
type stepError struct {
	Step   survey.Step
	Fields []survey.FieldError
}

func (e *stepError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Description
	}
	return fmt.Sprintf("%s is incomplete: %s", e.Step, strings.Join(parts, "; "))
}

// fillWizard answers every step and leaves the wizard on review.
func fillWizard(w *survey.Wizard, in intakeFile) error {
	profile := map[string]string{
		survey.FieldStoreName:    in.Profile.StoreName,
		survey.FieldLocation:     in.Profile.Location,
		survey.FieldContactName:  in.Profile.ContactName,
		survey.FieldContactEmail: in.Profile.ContactEmail,
		survey.FieldPhoneNumber:  in.Profile.PhoneNumber,
	}
	for field, value := range profile {
		w.SetProfileField(field, value)
	}
	if !w.Next() {
		return &stepError{Step: w.Step(), Fields: w.Errors()}
	}

	for i, item := range in.Items {
		id := w.FirstItemID()
		if i > 0 {
			if id = w.AddItem(); id == "" {
				return fmt.Errorf("could not add item %d", i+1)
			}
		}
		w.SetItemField(id, survey.FieldProductName, item.ProductName)
		w.SetItemField(id, survey.FieldQuantity, item.Quantity)
		w.SetItemField(id, survey.FieldTargetPrice, item.TargetPrice)
		w.SetItemField(id, survey.FieldNotes, item.Notes)
		if item.Unit != "" && !w.SetItemField(id, survey.FieldUnit, string(item.Unit)) {
			return fmt.Errorf("item %d: unknown unit %q", i+1, item.Unit)
		}
	}
	if !w.Next() {
		return &stepError{Step: w.Step(), Fields: w.Errors()}
	}

	w.SetBudgetField(survey.FieldTotalBudget, in.Budget.TotalBudget)
	w.SetBudgetField(survey.FieldPreferredVendors, in.Budget.PreferredVendors)
	w.SetBudgetField(survey.FieldDeliveryTimeline, in.Budget.DeliveryTimeline)
	w.SetBudgetField(survey.FieldMustHaves, in.Budget.MustHaves)
	if !w.Next() {
		return &stepError{Step: w.Step(), Fields: w.Errors()}
	}
	return nil
}

func newSynthesizer(cfg *config.Config) *synth.Synthesizer {
	seed := cfg.Survey.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return synth.NewSeeded(seed, time.Now)
}

func runIntake(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(intakePath)
	if err != nil {
		return fmt.Errorf("failed to open intake: %w", err)
	}
	defer f.Close()
	in, err := readIntake(f)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sess, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	out := cmd.OutOrStdout()
	wizard := survey.NewWizard(nil)
	if err := fillWizard(wizard, in); err != nil {
		return err
	}
	renderReview(out, wizard.State())

	a := app.New(wizard, newSynthesizer(cfg), sess.sync, sess.notes, app.Options{
		Scheduler:       clock.Real{},
		SubmitDelay:     cfg.Survey.SubmitDelay,
		TransitionDelay: cfg.Survey.TransitionDelay,
	})
	defer a.Close()

	if !a.Submit(ctx) {
		return fmt.Errorf("submission was refused")
	}
	fmt.Fprintf(out, "⏳ %s\n", survey.MessageProcessing)

	select {
	case <-a.Entered():
	case <-ctx.Done():
		return ctx.Err()
	}
	fmt.Fprintf(out, "✅ %s\n\n", wizard.State().Submission.Message)

	snap := sess.sync.Snapshot()
	renderProducts(out, sess.sync.State(), time.Now())

	if intakePush {
		if err := sess.client.PublishSnapshot(ctx, snap); err != nil {
			return fmt.Errorf("failed to publish dashboard: %w", err)
		}
		fmt.Fprintf(out, "📤 Published %d products to %s\n", len(snap.Products), cfg.API.BaseURL)
	}
	return nil
}
