package graph

import (
	"fmt"
	"sort"
)

// Graph is a collection of module nodes and the directed edges between them.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by module name.
	nodes map[string]*node
}

// node represents a single vertex. It is un-exported to enforce interaction
// with the graph via the public API (using module names), not by direct
// struct manipulation.
type node struct {
	// name is the unique module name for the node.
	name string
	// deps holds the set of nodes this node depends on (predecessors).
	deps map[string]*node
	// dependents holds the set of nodes that depend on this node (successors).
	dependents map[string]*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given module name to the graph. If a node
// with the same name already exists, the function does nothing.
func (g *Graph) AddNode(name string) {
	if _, ok := g.nodes[name]; ok {
		return
	}

	g.nodes[name] = &node{
		name:       name,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// AddEdge creates a directed edge meaning `from` depends on `to`. An error is
// returned if either node does not exist or if the edge would be a
// self-reference.
func (g *Graph) AddEdge(from, to string) error {
	if from == to {
		return fmt.Errorf("module '%s' depends on itself", from)
	}

	fromNode, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("module not found: %s", from)
	}

	toNode, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("module not found: %s", to)
	}

	fromNode.deps[to] = toNode
	toNode.dependents[from] = fromNode

	return nil
}

// Dependencies returns the sorted module names the given module depends on.
func (g *Graph) Dependencies(name string) ([]string, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("module not found: %s", name)
	}

	deps := make([]string, 0, len(n.deps))
	for depName := range n.deps {
		deps = append(deps, depName)
	}
	sort.Strings(deps)
	return deps, nil
}

// Dependents returns the sorted module names that depend on the given module.
func (g *Graph) Dependents(name string) ([]string, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("module not found: %s", name)
	}

	dependents := make([]string, 0, len(n.dependents))
	for depName := range n.dependents {
		dependents = append(dependents, depName)
	}
	sort.Strings(dependents)
	return dependents, nil
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, naming the first module involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited nodes known not to be part of a cycle.
	// temporary: nodes currently in the recursion stack.
	// unvisited: everything else.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.name] {
			return nil
		}
		if temporary[n.name] {
			// A node already in the recursion stack closes a cycle.
			return fmt.Errorf("dependency cycle detected involving module '%s'", n.name)
		}

		temporary[n.name] = true

		for _, depName := range sortedKeys(n.deps) {
			if err := visit(n.deps[depName]); err != nil {
				return err
			}
		}

		delete(temporary, n.name)
		permanent[n.name] = true

		return nil
	}

	for _, name := range sortedKeys(g.nodes) {
		if !permanent[name] {
			if err := visit(g.nodes[name]); err != nil {
				return err
			}
		}
	}

	return nil
}

// sortedKeys keeps traversal order, and therefore diagnostics, deterministic.
func sortedKeys(m map[string]*node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
