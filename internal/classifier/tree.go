package classifier

import (
	"errors"
	"fmt"
)

// TreeNode is one entry of a flattened decision tree
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

// TreeParams is the exported state of a fitted decision tree
type TreeParams struct {
	NFeatures int        `json:"n_features"`
	Nodes     []TreeNode `json:"nodes"`
}

// DecisionTree walks a flat node array from the root at index 0
type DecisionTree struct {
	nodes     []TreeNode
	nFeatures int
}

// NewDecisionTree validates the node array so Predict can never index out of range or loop
func NewDecisionTree(params TreeParams) (*DecisionTree, error) {
	if err := validateNodes(params.Nodes, params.NFeatures); err != nil {
		return nil, err
	}

	nodes := make([]TreeNode, len(params.Nodes))
	copy(nodes, params.Nodes)

	return &DecisionTree{nodes: nodes, nFeatures: params.NFeatures}, nil
}

func (dt *DecisionTree) Predict(features []float64) (int, error) {
	if err := checkInput(dt.Name(), dt.nFeatures, features); err != nil {
		return 0, err
	}
	return walk(dt.nodes, features), nil
}

func (dt *DecisionTree) Dim() int {
	return dt.nFeatures
}

func (dt *DecisionTree) Name() string {
	return KindDecisionTree
}

// walk assumes nodes passed validateNodes
func walk(nodes []TreeNode, features []float64) int {
	idx := 0
	for {
		node := nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

// validateNodes requires children to point strictly forward, which rules out cycles
func validateNodes(nodes []TreeNode, nFeatures int) error {
	if nFeatures <= 0 {
		return errors.New("tree has no input features")
	}
	if len(nodes) == 0 {
		return errors.New("tree has no nodes")
	}

	for i, node := range nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= nFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) {
			return fmt.Errorf("node %d: invalid left child %d", i, node.LeftChild)
		}
		if node.RightChild <= i || node.RightChild >= len(nodes) {
			return fmt.Errorf("node %d: invalid right child %d", i, node.RightChild)
		}
	}

	return nil
}
