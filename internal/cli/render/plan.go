package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// PlanRenderer renders a deployment plan as a table or as YAML
type PlanRenderer struct {
	out    io.Writer
	asYAML bool
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer, asYAML bool) *PlanRenderer {
	return &PlanRenderer{out: out, asYAML: asYAML}
}

type yamlStep struct {
	usecase.PlannedStep `yaml:",inline"`
	Address             string `yaml:"address,omitempty"`
}

type yamlPlan struct {
	Variant       domain.InitVariant `yaml:"variant"`
	InitSignature string             `yaml:"initialize"`
	ChainID       uint64             `yaml:"chain_id,omitempty"`
	Deployer      string             `yaml:"deployer,omitempty"`
	Steps         []yamlStep         `yaml:"steps"`
}

// Render renders the plan
func (r *PlanRenderer) Render(plan *usecase.DeploymentPlan) error {
	if r.asYAML {
		return r.renderYAML(plan)
	}

	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Variant:   "), plan.Variant)
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Initialize:"), plan.InitSignature)
	if plan.Deployer != "" {
		fmt.Fprintf(r.out, "%s %s %s\n", labelStyle.Sprint("Deployer:  "), addressStyle.Sprint(plan.Deployer), labelStyle.Sprintf("(chain %d)", plan.ChainID))
	}
	fmt.Fprintln(r.out)

	predicted := lo.SomeBy(plan.Steps, func(s usecase.PlannedStep) bool { return s.Predicted })

	header := table.Row{"#", "STEP", "ARTIFACT", "DEPENDS ON"}
	if predicted {
		header = append(header, "NONCE", "PREDICTED ADDRESS")
	}
	t := newTable(header)

	for i, step := range plan.Steps {
		name := step.Name
		if step.Contract != "" {
			name = contractTitle(domain.ContractKind(step.Contract))
		}
		deps := labelStyle.Sprint("-")
		if len(step.DependsOn) > 0 {
			deps = strings.Join(step.DependsOn, ", ")
		}

		row := table.Row{i + 1, name, step.Artifact, deps}
		if predicted {
			nonce := ""
			if step.Nonce != nil {
				nonce = fmt.Sprintf("%d", *step.Nonce)
			}
			address := ""
			if step.Predicted {
				address = addressStyle.Sprint(step.Address.Hex())
			}
			row = append(row, nonce, address)
		}
		t.AppendRow(row)
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

func (r *PlanRenderer) renderYAML(plan *usecase.DeploymentPlan) error {
	out := yamlPlan{
		Variant:       plan.Variant,
		InitSignature: plan.InitSignature,
		ChainID:       plan.ChainID,
		Deployer:      plan.Deployer,
		Steps: lo.Map(plan.Steps, func(s usecase.PlannedStep, _ int) yamlStep {
			step := yamlStep{PlannedStep: s}
			if s.Predicted {
				step.Address = s.Address.Hex()
			}
			return step
		}),
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return enc.Close()
}

var _ Renderer[*usecase.DeploymentPlan] = (*PlanRenderer)(nil)
