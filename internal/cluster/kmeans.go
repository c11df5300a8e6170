package cluster

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Config holds the k-means parameters. Seed makes every run fully
// deterministic: init run i uses Seed+i, so a fixed (data, params) pair
// always yields identical labels and metrics.
type Config struct {
	K       int
	Seed    int64
	MaxIter int
	NInit   int
}

// Result is a completed clustering.
type Result struct {
	Labels  []int
	Centers [][]float64
	Inertia float64
}

// Run clusters the points and returns the best of NInit runs by inertia.
func Run(points [][]float64, cfg Config) (*Result, error) {
	if cfg.K < 1 {
		return nil, fmt.Errorf("n_clusters must be >= 1, got %d", cfg.K)
	}
	if len(points) < cfg.K {
		return nil, fmt.Errorf("cannot form %d clusters from %d samples", cfg.K, len(points))
	}
	if cfg.MaxIter < 1 {
		return nil, fmt.Errorf("max_iter must be >= 1, got %d", cfg.MaxIter)
	}
	if cfg.NInit < 1 {
		return nil, fmt.Errorf("n_init must be >= 1, got %d", cfg.NInit)
	}

	dim := len(points[0])
	for i, p := range points {
		if len(p) == 0 || len(p) != dim {
			return nil, fmt.Errorf("sample %d has %d features, want %d", i, len(p), dim)
		}
	}

	var best *Result
	for run := 0; run < cfg.NInit; run++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(run)))
		res := lloyd(points, cfg.K, cfg.MaxIter, rng)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// lloyd runs one seeded k-means iteration to convergence or MaxIter.
func lloyd(points [][]float64, k, maxIter int, rng *rand.Rand) *Result {
	centers := seedCenters(points, k, rng)
	labels := make([]int, len(points))

	for iter := 0; iter < maxIter; iter++ {
		changed := assign(points, centers, labels)
		recenter(points, labels, centers, rng)
		if !changed && iter > 0 {
			break
		}
	}

	return &Result{
		Labels:  labels,
		Centers: centers,
		Inertia: inertia(points, labels, centers),
	}
}

// seedCenters picks initial centers with the k-means++ scheme: the first
// uniformly, the rest weighted by squared distance to the nearest chosen
// center.
func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	first := points[rng.Intn(len(points))]
	centers = append(centers, clonePoint(first))

	d2 := make([]float64, len(points))
	for len(centers) < k {
		var sum float64
		for i, p := range points {
			d2[i] = sqDist(p, centers[0])
			for _, c := range centers[1:] {
				if d := sqDist(p, c); d < d2[i] {
					d2[i] = d
				}
			}
			sum += d2[i]
		}

		if sum == 0 {
			// All remaining mass sits on chosen centers (duplicate points);
			// fall back to a uniform pick.
			centers = append(centers, clonePoint(points[rng.Intn(len(points))]))
			continue
		}

		target := rng.Float64() * sum
		idx := len(points) - 1
		var acc float64
		for i := range points {
			acc += d2[i]
			if acc >= target {
				idx = i
				break
			}
		}
		centers = append(centers, clonePoint(points[idx]))
	}
	return centers
}

// assign labels every point with its nearest center. Returns whether any
// label changed.
func assign(points [][]float64, centers [][]float64, labels []int) bool {
	changed := false
	for i, p := range points {
		nearest := 0
		bestD := sqDist(p, centers[0])
		for j := 1; j < len(centers); j++ {
			if d := sqDist(p, centers[j]); d < bestD {
				bestD = d
				nearest = j
			}
		}
		if labels[i] != nearest {
			labels[i] = nearest
			changed = true
		}
	}
	return changed
}

// recenter moves each center to the mean of its assigned points. An empty
// cluster is reseeded on the point farthest from its current assignment,
// keeping all k clusters populated.
func recenter(points [][]float64, labels []int, centers [][]float64, rng *rand.Rand) {
	dim := len(points[0])
	counts := make([]int, len(centers))
	sums := make([][]float64, len(centers))
	for j := range sums {
		sums[j] = make([]float64, dim)
	}

	for i, p := range points {
		counts[labels[i]]++
		floats.Add(sums[labels[i]], p)
	}

	for j := range centers {
		if counts[j] == 0 {
			idx := farthestPoint(points, labels, centers)
			labels[idx] = j
			centers[j] = clonePoint(points[idx])
			continue
		}
		for d := 0; d < dim; d++ {
			centers[j][d] = sums[j][d] / float64(counts[j])
		}
	}
}

// farthestPoint finds the point with the largest distance to its assigned
// center.
func farthestPoint(points [][]float64, labels []int, centers [][]float64) int {
	best, bestD := 0, -1.0
	for i, p := range points {
		if d := sqDist(p, centers[labels[i]]); d > bestD {
			best, bestD = i, d
		}
	}
	return best
}

// inertia is the total within-cluster sum of squared distances.
func inertia(points [][]float64, labels []int, centers [][]float64) float64 {
	var sum float64
	for i, p := range points {
		sum += sqDist(p, centers[labels[i]])
	}
	return sum
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clonePoint(p []float64) []float64 {
	c := make([]float64, len(p))
	copy(c, p)
	return c
}

// Sizes counts cluster membership.
func Sizes(labels []int, k int) []int {
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	return sizes
}
