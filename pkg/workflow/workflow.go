// Package workflow declares the screen and flow map of the AI recovery
// trainer app.
//
// Onboarding is a straight line from the landing page to the dashboard; the
// dashboard then fans out to the six feature screens.
package workflow

import (
	"github.com/matzehuels/recoveryflow/pkg/diagram"
)

// Defaults for the rendered workflow.
const (
	Comment         = "AI Recovery Trainer Workflow"
	DefaultBasename = "ai_recovery_trainer_workflow"
	DefaultSize     = "8"
)

// Screens, in declaration order.
var nodes = []diagram.Node{
	{Key: "L", Label: "Landing Page"},
	{Key: "LS", Label: "Login / Signup"},
	{Key: "P", Label: "Personal Info Form\n(Name, Age, Gender, Surgery, Restrictions)"},
	{Key: "AI", Label: "AI Module\n- Recovery Plan\n- Meal Plan\n- Medicine Schedule"},
	{Key: "D", Label: "Dashboard / Home"},

	// Dashboard features
	{Key: "R", Label: "Recovery Plan\n(Week-wise Timeline)"},
	{Key: "M", Label: "Meal Plan"},
	{Key: "MT", Label: "Medicine Tracker\n+ Alerts"},
	{Key: "C", Label: "Daily Check-in\n(Pain, Mobility, Exercise)"},
	{Key: "PR", Label: "Progress Tracker\n(Graphs & Reports)"},
	{Key: "A", Label: "AI Assistant Chat\n(optional)"},
}

var onboarding = []diagram.Edge{
	{From: "L", To: "LS"},
	{From: "LS", To: "P"},
	{From: "P", To: "AI"},
	{From: "AI", To: "D"},
}

var dashboard = []diagram.Edge{
	{From: "D", To: "R"},
	{From: "D", To: "M"},
	{From: "D", To: "MT"},
	{From: "D", To: "C"},
	{From: "D", To: "PR"},
	{From: "D", To: "A"},
}

// Options overrides the rendering attributes of the workflow diagram.
// Zero values keep the defaults (top-to-bottom, png, size 8, dot layout).
type Options struct {
	Direction diagram.Direction
	Format    string
	Size      string
	Layout    string
}

func (o Options) withDefaults() Options {
	if o.Direction == "" {
		o.Direction = diagram.TopToBottom
	}
	if o.Format == "" {
		o.Format = diagram.FormatPNG
	}
	if o.Size == "" {
		o.Size = DefaultSize
	}
	if o.Layout == "" {
		o.Layout = diagram.DefaultLayout
	}
	return o
}

// Build returns the workflow diagram, ready to render.
func Build(opts Options) (*diagram.Diagram, error) {
	opts = opts.withDefaults()

	d := diagram.New(Comment)
	if err := d.Configure(opts.Direction, opts.Format, opts.Size); err != nil {
		return nil, err
	}
	if err := d.SetLayout(opts.Layout); err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err := d.AddNode(n.Key, n.Label); err != nil {
			return nil, err
		}
	}
	if err := d.AddEdges(onboarding...); err != nil {
		return nil, err
	}
	if err := d.AddEdges(dashboard...); err != nil {
		return nil, err
	}
	return d, nil
}
