package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextHookNumber(t *testing.T) {
	t.Run("空列表从 1 开始", func(t *testing.T) {
		assert.Equal(t, 1, NextHookNumber(nil))
	})

	t.Run("填补最小空缺", func(t *testing.T) {
		existing := []*Deliverable{
			{HookNumber: 1}, {HookNumber: 2}, {HookNumber: 4},
		}
		assert.Equal(t, 3, NextHookNumber(existing))
	})

	t.Run("占满返回 0", func(t *testing.T) {
		var existing []*Deliverable
		for n := 1; n <= MaxDeliverablesPerVideo; n++ {
			existing = append(existing, &Deliverable{HookNumber: n})
		}
		assert.Zero(t, NextHookNumber(existing))
	})
}

func TestDeliverableNomenclatureName(t *testing.T) {
	d := &Deliverable{GeneratedName: "GERADO"}
	assert.Equal(t, "GERADO", d.NomenclatureName())

	d.EditedName = "EDITADO"
	assert.Equal(t, "EDITADO", d.NomenclatureName())

	n := 10
	d.AdNumber = &n
	assert.True(t, d.IsSealed())
}
