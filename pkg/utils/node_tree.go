package utils

import (
	"sort"

	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/ecs"
)

// ParentOf 返回节点的父节点，根节点或非节点实体返回 InvalidEntity
func ParentOf(em *ecs.EntityManager, id ecs.EntityID) ecs.EntityID {
	node, ok := ecs.GetComponent[*components.NodeComponent](em, id)
	if !ok {
		return ecs.InvalidEntity
	}
	return node.Parent
}

// AddChild 把 child 挂到 parent 下
// child 若已有父节点会先从原父节点摘下
func AddChild(em *ecs.EntityManager, parent, child ecs.EntityID) {
	childNode, ok := ecs.GetComponent[*components.NodeComponent](em, child)
	if !ok {
		childNode = &components.NodeComponent{}
		ecs.AddComponent(em, child, childNode)
	}
	if childNode.Parent != ecs.InvalidEntity {
		detach(em, childNode.Parent, child)
	}

	parentNode, ok := ecs.GetComponent[*components.NodeComponent](em, parent)
	if !ok {
		parentNode = &components.NodeComponent{}
		ecs.AddComponent(em, parent, parentNode)
	}
	parentNode.Children = append(parentNode.Children, child)
	childNode.Parent = parent
}

// RemoveFromParent 把节点及其整棵子树从树上摘下并标记删除
//
// 子树实体上的动画随实体删除自动停止（ActionSystem 跳过已删除的实体）。
func RemoveFromParent(em *ecs.EntityManager, id ecs.EntityID) {
	if parent := ParentOf(em, id); parent != ecs.InvalidEntity {
		detach(em, parent, id)
		if node, ok := ecs.GetComponent[*components.NodeComponent](em, id); ok {
			node.Parent = ecs.InvalidEntity
		}
	}
	destroySubtree(em, id)
}

// IsAttached 判断节点是否仍挂在以 root 为根的树上
func IsAttached(em *ecs.EntityManager, root, id ecs.EntityID) bool {
	for cur := id; cur != ecs.InvalidEntity; cur = ParentOf(em, cur) {
		if !em.IsAlive(cur) {
			return false
		}
		if cur == root {
			return true
		}
	}
	return false
}

// SortedChildren 返回按 ZIndex 排序的子节点（相同 ZIndex 保持添加顺序）
func SortedChildren(em *ecs.EntityManager, id ecs.EntityID) []ecs.EntityID {
	node, ok := ecs.GetComponent[*components.NodeComponent](em, id)
	if !ok || len(node.Children) == 0 {
		return nil
	}

	children := make([]ecs.EntityID, len(node.Children))
	copy(children, node.Children)
	sort.SliceStable(children, func(i, j int) bool {
		return zIndexOf(em, children[i]) < zIndexOf(em, children[j])
	})
	return children
}

func zIndexOf(em *ecs.EntityManager, id ecs.EntityID) int {
	if node, ok := ecs.GetComponent[*components.NodeComponent](em, id); ok {
		return node.ZIndex
	}
	return 0
}

func detach(em *ecs.EntityManager, parent, child ecs.EntityID) {
	parentNode, ok := ecs.GetComponent[*components.NodeComponent](em, parent)
	if !ok {
		return
	}
	for i, c := range parentNode.Children {
		if c == child {
			parentNode.Children = append(parentNode.Children[:i], parentNode.Children[i+1:]...)
			return
		}
	}
}

func destroySubtree(em *ecs.EntityManager, id ecs.EntityID) {
	if node, ok := ecs.GetComponent[*components.NodeComponent](em, id); ok {
		for _, child := range node.Children {
			destroySubtree(em, child)
		}
	}
	em.DestroyEntity(id)
}
