package palette

import (
	"fmt"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Centroid is one cluster's mean color, channel means rounded to integers.
type Centroid struct {
	R uint8
	G uint8
	B uint8
}

// clusterColors partitions the samples into at most k clusters with k-means
// over Euclidean RGB distance and returns one centroid per non-empty cluster.
// An empty sample list yields no centroids and no error; a failure inside the
// clustering library is the one hard error of the pipeline.
func clusterColors(samples []RGB, k int) ([]Centroid, error) {
	if len(samples) == 0 {
		return nil, nil
	}
	if k > len(samples) {
		k = len(samples)
	}

	// The clustering library seeds initial centers uniformly in [0,1] per
	// dimension, so channels are scaled to that range and back.
	dataset := make(clusters.Observations, 0, len(samples))
	for _, s := range samples {
		dataset = append(dataset, clusters.Coordinates{
			float64(s.R) / 255.0,
			float64(s.G) / 255.0,
			float64(s.B) / 255.0,
		})
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("color clustering failed: %w", err)
	}

	centroids := make([]Centroid, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		centroids = append(centroids, Centroid{
			R: roundChannel(c.Center[0] * 255.0),
			G: roundChannel(c.Center[1] * 255.0),
			B: roundChannel(c.Center[2] * 255.0),
		})
	}
	return centroids, nil
}

func roundChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
