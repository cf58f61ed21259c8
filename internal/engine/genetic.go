package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/piwi3910/ShapePack/internal/model"
)

// GeneticConfig holds parameters for the genetic order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns parameters tuned for typical request
// counts (up to roughly 50 shapes).
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// chromosome is one candidate placement order over the pending
// requests, paired with its evaluated fitness.
type chromosome struct {
	order   []int
	fitness float64
}

func (c chromosome) clone() chromosome {
	order := make([]int, len(c.order))
	copy(order, c.order)
	return chromosome{order: order, fitness: c.fitness}
}

// geneticOptimizer evolves placement orders. Fitness evaluation always
// runs sequentially and without compaction so that scores are
// reproducible for a fixed seed; the winning order is then solved once
// more with the caller's full settings.
type geneticOptimizer struct {
	eval    *Engine
	final   *Engine
	config  GeneticConfig
	shapes  []model.Shape
	proto   []model.Status
	pending []int
	width   float64
	height  float64
	rng     *rand.Rand
}

// Evolve searches placement orders with a genetic algorithm and
// returns the best layout found. The chromosome is a permutation of
// the pending requests; fitness is packing density with a penalty per
// unplaced shape. A zero config selects defaults scaled to the request
// count. Runs are reproducible for a fixed config seed.
func (e *Engine) Evolve(specs []model.ShapeSpec, width, height float64, config GeneticConfig) (model.Result, error) {
	if width <= 0 || height <= 0 {
		return model.Result{}, fmt.Errorf("%w: got %gx%g", model.ErrInvalidArea, width, height)
	}
	shapes, statuses, err := e.resolve(specs)
	if err != nil {
		return model.Result{}, err
	}
	var pending []int
	for i := range statuses {
		if statuses[i].State == model.StatePending {
			pending = append(pending, i)
		}
	}

	// Order cannot matter for batches this small; solve directly.
	if len(pending) <= 2 {
		return e.PlaceAll(specs, width, height)
	}

	if config.PopulationSize <= 0 {
		config = DefaultGeneticConfig()
		// Larger order spaces need more generations to converge.
		if len(pending) > 20 {
			config.Generations = 150
		}
		if len(pending) > 50 {
			config.Generations = 200
			config.PopulationSize = 80
		}
	}

	eval := New(e.Settings)
	eval.Settings.Workers = 1
	eval.Settings.Compact = false
	final := New(e.Settings)
	final.Settings.Workers = 1

	ga := &geneticOptimizer{
		eval:    eval,
		final:   final,
		config:  config,
		shapes:  shapes,
		proto:   statuses,
		pending: pending,
		width:   width,
		height:  height,
		rng:     rand.New(rand.NewSource(config.Seed)),
	}
	best := ga.optimize()
	return ga.decode(ga.final, best.order), nil
}

// optimize runs the generational loop: elites carry over unchanged,
// the rest of the next population comes from tournament-selected
// parents via order crossover and mutation.
func (g *geneticOptimizer) optimize() chromosome {
	pop := g.initPopulation()
	for i := range pop {
		g.evaluate(&pop[i])
	}
	sortByFitness(pop)

	for gen := 0; gen < g.config.Generations; gen++ {
		next := make([]chromosome, 0, g.config.PopulationSize)
		for i := 0; i < g.config.EliteCount && i < len(pop); i++ {
			next = append(next, pop[i].clone())
		}
		for len(next) < g.config.PopulationSize {
			p1 := g.tournament(pop)
			p2 := g.tournament(pop)
			child := g.crossover(p1, p2)
			g.mutate(&child)
			g.evaluate(&child)
			next = append(next, child)
		}
		pop = next
		sortByFitness(pop)
	}
	return pop[0]
}

// initPopulation seeds the first chromosome with the greedy
// largest-first order and fills the rest with random permutations, so
// the search never does worse than the default heuristic.
func (g *geneticOptimizer) initPopulation() []chromosome {
	pop := make([]chromosome, 0, g.config.PopulationSize)
	pop = append(pop, chromosome{order: g.greedyOrder()})
	for len(pop) < g.config.PopulationSize {
		perm := g.rng.Perm(len(g.pending))
		order := make([]int, len(perm))
		for i, p := range perm {
			order[i] = g.pending[p]
		}
		pop = append(pop, chromosome{order: order})
	}
	return pop
}

func (g *geneticOptimizer) greedyOrder() []int {
	order := make([]int, len(g.pending))
	copy(order, g.pending)
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if g.shapes[a].Area() != g.shapes[b].Area() {
			return g.shapes[a].Area() > g.shapes[b].Area()
		}
		return a < b
	})
	return order
}

// decode solves the request in the chromosome's order and returns the
// full result.
func (g *geneticOptimizer) decode(eng *Engine, order []int) model.Result {
	statuses := make([]model.Status, len(g.proto))
	copy(statuses, g.proto)
	layout := model.NewLayout(g.width, g.height)
	return eng.run(layout, g.shapes, statuses, order)
}

// evaluate scores a chromosome: packing density in [0,1] minus 0.1 per
// unplaced shape, clamped at zero. One extra placed shape always
// outweighs any density difference below ten points.
func (g *geneticOptimizer) evaluate(c *chromosome) {
	res := g.decode(g.eval, c.order)
	fitness := res.Density()/100 - 0.1*float64(res.UnplacedCount())
	if fitness < 0 {
		fitness = 0
	}
	c.fitness = fitness
}

// tournament picks the fittest of TournamentSize random chromosomes.
func (g *geneticOptimizer) tournament(pop []chromosome) chromosome {
	best := pop[g.rng.Intn(len(pop))]
	for i := 1; i < g.config.TournamentSize; i++ {
		c := pop[g.rng.Intn(len(pop))]
		if c.fitness > best.fitness {
			best = c
		}
	}
	return best
}

// crossover applies order crossover (OX1): a random slice of the first
// parent stays in place and the open positions are filled with the
// second parent's genes in their relative order.
func (g *geneticOptimizer) crossover(p1, p2 chromosome) chromosome {
	n := len(p1.order)
	start := g.rng.Intn(n)
	end := start + g.rng.Intn(n-start)

	child := make([]int, n)
	for i := range child {
		child[i] = -1
	}
	used := make(map[int]bool, n)
	for i := start; i <= end; i++ {
		child[i] = p1.order[i]
		used[p1.order[i]] = true
	}
	pos := 0
	for _, v := range p2.order {
		if used[v] {
			continue
		}
		for child[pos] != -1 {
			pos++
		}
		child[pos] = v
	}
	return chromosome{order: child}
}

func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	// Swap mutation: exchange two random positions
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}

	// Inversion mutation: reverse a random segment (less frequent)
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
	}
}

func sortByFitness(pop []chromosome) {
	sort.Slice(pop, func(i, j int) bool {
		return pop[i].fitness > pop[j].fitness
	})
}
