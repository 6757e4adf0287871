package domain

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// EntityType сущность, для которой считается занятость
type EntityType string

const (
	EntitySalon  EntityType = "salon"
	EntityMaster EntityType = "master"
)

// Validate проверяет тип сущности
func (e EntityType) Validate() error {
	switch e {
	case EntitySalon, EntityMaster:
		return nil
	default:
		return fmt.Errorf("unknown entity type %q", string(e))
	}
}

// Availability занятость по часовым слотам: true - слот свободен
type Availability map[types.TimeString]bool

// IsFree true, если слот есть в окне и свободен
func (a Availability) IsFree(slot types.TimeString) bool {
	return a[slot]
}

// FreeSlots свободные слоты по возрастанию времени
func (a Availability) FreeSlots() []types.TimeString {
	free := make([]types.TimeString, 0, len(a))
	for slot, ok := range a {
		if ok {
			free = append(free, slot)
		}
	}
	sort.Slice(free, func(i, j int) bool { return free[i].IsBefore(free[j]) })
	return free
}

// Intersect слот свободен, только если свободен в обоих наборах
func (a Availability) Intersect(other Availability) Availability {
	res := make(Availability, len(a))
	for slot, ok := range a {
		res[slot] = ok && other[slot]
	}
	return res
}
