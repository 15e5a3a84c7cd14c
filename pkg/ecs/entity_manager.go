// Package ecs 提供演示宿主使用的最小实体-组件存储
//
// 每个滑动条是一个实体，组件保存控件实例、屏幕位置、焦点和标签，
// 各个系统按组件组合查询实体。实体 ID 按创建顺序递增，
// 查询结果按 ID 排序，保证焦点切换和绘制顺序稳定。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]any
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1, // ID从1开始,0保留为无效ID
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// EntityCount 返回存活实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// entitiesWith 查询拥有全部指定组件类型的实体，按 ID 升序
func (em *EntityManager) entitiesWith(types ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range types {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加组件，同类型组件会被替换
// 实体不存在时忽略
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if compMap, exists := em.components[id]; exists {
		compMap[typeOf[T]()] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, typeOf[T]())
	}
}

// GetComponent 获取实体的特定类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	compMap, exists := em.components[id]
	if !exists {
		return zero, false
	}
	comp, found := compMap[typeOf[T]()]
	if !found {
		return zero, false
	}
	return comp.(T), true
}

// HasComponent 检查实体是否拥有特定类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := GetComponent[T](em, id)
	return ok
}

// GetEntitiesWith1 查询拥有组件 A 的所有实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	return em.entitiesWith(typeOf[A]())
}

// GetEntitiesWith2 查询同时拥有组件 A 和 B 的所有实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	return em.entitiesWith(typeOf[A](), typeOf[B]())
}
