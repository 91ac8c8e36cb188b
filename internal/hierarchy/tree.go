// Package hierarchy строит дерево категорий из плоского списка без обращения к хранилищу.
package hierarchy

import (
	"errors"
	"sort"

	"github.com/skillmatrix/skill-matrix/internal/models"
)

// ErrCycle цепочка родителей не заканчивается корнем.
var ErrCycle = errors.New("hierarchy: цикл в цепочке родителей")

// BuildTree собирает лес категорий. Категории с несуществующим родителем
// становятся корнями. Узлы одного уровня упорядочены по display_order, затем по имени.
func BuildTree(categories []models.Category) ([]*models.CategoryNode, error) {
	if err := checkCycles(categories); err != nil {
		return nil, err
	}

	nodes := make(map[int64]*models.CategoryNode, len(categories))
	for _, c := range categories {
		c.Children = nil
		nodes[c.ID] = &models.CategoryNode{Category: c}
	}

	var roots []*models.CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Nodes = append(parent.Nodes, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortNodes(roots)
	Walk(roots, func(n *models.CategoryNode, depth int) bool {
		n.Depth = depth
		sortNodes(n.Nodes)
		return true
	})

	return roots, nil
}

// Walk обходит дерево в глубину. Если fn возвращает false, потомки узла пропускаются.
func Walk(nodes []*models.CategoryNode, fn func(n *models.CategoryNode, depth int) bool) {
	var visit func(list []*models.CategoryNode, depth int)
	visit = func(list []*models.CategoryNode, depth int) {
		for _, n := range list {
			if fn(n, depth) {
				visit(n.Nodes, depth+1)
			}
		}
	}
	visit(nodes, 0)
}

// Find ищет узел по id.
func Find(nodes []*models.CategoryNode, id int64) *models.CategoryNode {
	var found *models.CategoryNode
	Walk(nodes, func(n *models.CategoryNode, _ int) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Descendants возвращает id всех потомков категории, без неё самой.
func Descendants(categories []models.Category, id int64) []int64 {
	children := childIndex(categories)

	var result []int64
	queue := []int64{id}
	seen := map[int64]bool{id: true}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if seen[child] {
				continue
			}
			seen[child] = true
			result = append(result, child)
			queue = append(queue, child)
		}
	}
	return result
}

// Path возвращает цепочку от корня до категории включительно.
func Path(categories []models.Category, id int64) ([]models.Category, error) {
	byID := make(map[int64]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var path []models.Category
	seen := make(map[int64]bool)
	current, ok := byID[id]
	for ok {
		if seen[current.ID] {
			return nil, ErrCycle
		}
		seen[current.ID] = true
		path = append(path, current)
		if current.ParentID == nil {
			break
		}
		current, ok = byID[*current.ParentID]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// IsDescendant сообщает, лежит ли candidate в поддереве root (включая сам root).
func IsDescendant(categories []models.Category, root, candidate int64) bool {
	if root == candidate {
		return true
	}
	for _, id := range Descendants(categories, root) {
		if id == candidate {
			return true
		}
	}
	return false
}

func childIndex(categories []models.Category) map[int64][]int64 {
	children := make(map[int64][]int64)
	for _, c := range categories {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}
	return children
}

func checkCycles(categories []models.Category) error {
	parent := make(map[int64]*int64, len(categories))
	for _, c := range categories {
		parent[c.ID] = c.ParentID
	}

	// 0: не посещён, 1: в текущей цепочке, 2: проверен
	state := make(map[int64]int, len(categories))
	for _, c := range categories {
		var chain []int64
		id := c.ID
		for {
			if state[id] == 2 {
				break
			}
			if state[id] == 1 {
				return ErrCycle
			}
			state[id] = 1
			chain = append(chain, id)

			p, ok := parent[id]
			if !ok || p == nil {
				break
			}
			if _, exists := parent[*p]; !exists {
				break
			}
			id = *p
		}
		for _, v := range chain {
			state[v] = 2
		}
	}
	return nil
}

func sortNodes(nodes []*models.CategoryNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].DisplayOrder != nodes[j].DisplayOrder {
			return nodes[i].DisplayOrder < nodes[j].DisplayOrder
		}
		return nodes[i].Name < nodes[j].Name
	})
}
