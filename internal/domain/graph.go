package domain

import (
	"fmt"
	"sort"
)

// Step is a single node of the deployment topology. Contract steps carry a
// Kind; the initialize step does not.
type Step struct {
	Name string
	Kind ContractKind
	Deps []string
}

// IsContract reports whether the step creates a contract
func (s Step) IsContract() bool {
	return s.Kind != ""
}

// DependencyGraph represents a directed acyclic graph of deployment steps
type DependencyGraph struct {
	steps []Step
	index map[string]int
	edges map[string][]string // adjacency list: node -> list of dependents
}

// NewDependencyGraph builds a graph from steps. Declaration order is kept and
// used to break ties during sorting.
func NewDependencyGraph(steps ...Step) (*DependencyGraph, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("at least one step is required")
	}

	g := &DependencyGraph{
		steps: steps,
		index: make(map[string]int, len(steps)),
		edges: make(map[string][]string),
	}

	for i, step := range steps {
		if step.Name == "" {
			return nil, fmt.Errorf("step %d has no name", i)
		}
		if _, exists := g.index[step.Name]; exists {
			return nil, fmt.Errorf("duplicate step '%s'", step.Name)
		}
		g.index[step.Name] = i
	}

	for _, step := range steps {
		for _, dep := range step.Deps {
			if dep == step.Name {
				return nil, fmt.Errorf("step '%s' cannot depend on itself", step.Name)
			}
			if _, exists := g.index[dep]; !exists {
				return nil, fmt.Errorf("step '%s' depends on non-existent step '%s'", step.Name, dep)
			}
			g.edges[dep] = append(g.edges[dep], step.Name)
		}
	}

	return g, nil
}

// SolosTopology returns the fixed four-contract topology: the token is
// constructed with the NFT address, and initialize needs all four contracts.
func SolosTopology() *DependencyGraph {
	g, err := NewDependencyGraph(
		Step{Name: string(ContractNFT), Kind: ContractNFT},
		Step{Name: string(ContractToken), Kind: ContractToken, Deps: []string{string(ContractNFT)}},
		Step{Name: string(ContractTimelock), Kind: ContractTimelock},
		Step{Name: string(ContractVault), Kind: ContractVault},
		Step{
			Name: StepInitialize,
			Deps: []string{
				string(ContractNFT),
				string(ContractToken),
				string(ContractTimelock),
				string(ContractVault),
			},
		},
	)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in topology: %v", err))
	}
	return g
}

// Steps returns the steps in declaration order
func (g *DependencyGraph) Steps() []Step {
	out := make([]Step, len(g.steps))
	copy(out, g.steps)
	return out
}

// TopologicalSort returns the steps in execution order, or an error if there's
// a cycle. Ready steps run in declaration order.
func (g *DependencyGraph) TopologicalSort() ([]Step, error) {
	inDegree := make(map[string]int, len(g.steps))
	for _, step := range g.steps {
		inDegree[step.Name] = len(step.Deps)
	}

	var queue []string
	for _, step := range g.steps {
		if inDegree[step.Name] == 0 {
			queue = append(queue, step.Name)
		}
	}

	byDeclaration := func(names []string) {
		sort.Slice(names, func(i, j int) bool {
			return g.index[names[i]] < g.index[names[j]]
		})
	}

	result := make([]Step, 0, len(g.steps))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, g.steps[g.index[current]])

		for _, dependent := range g.edges[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
				byDeclaration(queue)
			}
		}
	}

	if len(result) != len(g.steps) {
		var cycleNodes []string
		for name, degree := range inDegree {
			if degree > 0 {
				cycleNodes = append(cycleNodes, name)
			}
		}
		byDeclaration(cycleNodes)
		return nil, fmt.Errorf("circular dependency detected involving steps: %v", cycleNodes)
	}

	return result, nil
}
