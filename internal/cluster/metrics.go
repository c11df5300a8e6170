package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Silhouette computes the mean silhouette coefficient over all samples.
// Bounded in [-1, 1]; singleton clusters contribute 0 for their sample,
// matching the usual convention.
func Silhouette(points [][]float64, labels []int, k int) float64 {
	n := len(points)
	sizes := Sizes(labels, k)

	var total float64
	for i, p := range points {
		if sizes[labels[i]] <= 1 {
			continue // s(i) = 0
		}

		// Mean distance from p to every cluster.
		meanDist := make([]float64, k)
		for j, q := range points {
			if i == j {
				continue
			}
			meanDist[labels[j]] += floats.Distance(p, q, 2)
		}
		for c := 0; c < k; c++ {
			div := sizes[c]
			if c == labels[i] {
				div-- // exclude p itself
			}
			if div > 0 {
				meanDist[c] /= float64(div)
			}
		}

		a := meanDist[labels[i]]
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c != labels[i] && sizes[c] > 0 && meanDist[c] < b {
				b = meanDist[c]
			}
		}

		if max := math.Max(a, b); max > 0 {
			total += (b - a) / max
		}
	}
	return total / float64(n)
}

// DaviesBouldin computes the Davies-Bouldin index: the mean, over clusters,
// of the worst-case ratio of intra-cluster scatter to center separation.
// Lower is better; zero only for perfectly tight, separated clusters.
func DaviesBouldin(points [][]float64, labels []int, centers [][]float64) float64 {
	k := len(centers)
	sizes := Sizes(labels, k)

	// Mean distance of each cluster's points to its center.
	scatter := make([]float64, k)
	for i, p := range points {
		scatter[labels[i]] += floats.Distance(p, centers[labels[i]], 2)
	}
	for c := 0; c < k; c++ {
		if sizes[c] > 0 {
			scatter[c] /= float64(sizes[c])
		}
	}

	var sum float64
	for i := 0; i < k; i++ {
		worst := 0.0
		for j := 0; j < k; j++ {
			if i == j {
				continue
			}
			sep := floats.Distance(centers[i], centers[j], 2)
			if sep == 0 {
				continue
			}
			if r := (scatter[i] + scatter[j]) / sep; r > worst {
				worst = r
			}
		}
		sum += worst
	}
	return sum / float64(k)
}

// CalinskiHarabasz computes the variance ratio criterion: between-cluster
// dispersion over within-cluster dispersion, scaled by degrees of freedom.
// Higher is better.
func CalinskiHarabasz(points [][]float64, labels []int, centers [][]float64) float64 {
	n := len(points)
	k := len(centers)
	if k <= 1 || n <= k {
		return 0
	}

	dim := len(points[0])
	sizes := Sizes(labels, k)

	// Overall centroid.
	grand := make([]float64, dim)
	for _, p := range points {
		floats.Add(grand, p)
	}
	floats.Scale(1/float64(n), grand)

	var between, within float64
	for c := 0; c < k; c++ {
		between += float64(sizes[c]) * sqDist(centers[c], grand)
	}
	for i, p := range points {
		within += sqDist(p, centers[labels[i]])
	}

	if within == 0 {
		return 0
	}
	return (between / float64(k-1)) / (within / float64(n-k))
}
