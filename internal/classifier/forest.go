package classifier

import (
	"errors"
	"fmt"
)

// ForestParams is the exported state of a fitted random forest
type ForestParams struct {
	NFeatures int          `json:"n_features"`
	Trees     [][]TreeNode `json:"trees"`
}

// RandomForest predicts by majority vote across its trees
type RandomForest struct {
	trees     [][]TreeNode
	nFeatures int
}

func NewRandomForest(params ForestParams) (*RandomForest, error) {
	if len(params.Trees) == 0 {
		return nil, errors.New("forest has no trees")
	}

	trees := make([][]TreeNode, len(params.Trees))
	for i, nodes := range params.Trees {
		if err := validateNodes(nodes, params.NFeatures); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees[i] = append([]TreeNode(nil), nodes...)
	}

	return &RandomForest{trees: trees, nFeatures: params.NFeatures}, nil
}

// Predict returns the most voted class; ties resolve to the smallest class id
func (rf *RandomForest) Predict(features []float64) (int, error) {
	if err := checkInput(rf.Name(), rf.nFeatures, features); err != nil {
		return 0, err
	}

	votes := make(map[int]int, len(rf.trees))
	for _, nodes := range rf.trees {
		votes[walk(nodes, features)]++
	}

	best, bestVotes := 0, -1
	for label, count := range votes {
		if count > bestVotes || (count == bestVotes && label < best) {
			best, bestVotes = label, count
		}
	}

	return best, nil
}

func (rf *RandomForest) Dim() int {
	return rf.nFeatures
}

func (rf *RandomForest) Name() string {
	return KindRandomForest
}
