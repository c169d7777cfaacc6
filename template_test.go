package lazylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRow implements only ItemConfigurer.
type recordingRow struct {
	*Box
	index int
	item  any
}

func newRecordingRow() *recordingRow {
	return &recordingRow{Box: NewBox(), index: -1}
}

func (r *recordingRow) Height(width int) int { return 1 }

func (r *recordingRow) ConfigureItem(index int, item any) {
	r.index = index
	r.item = item
}

// setterRow implements only ItemSetter.
type setterRow struct {
	*Box
	item any
}

func (r *setterRow) Height(width int) int { return 1 }

func (r *setterRow) SetItem(item any) { r.item = item }

// plainRow implements neither configuration interface.
type plainRow struct {
	*Box
}

func (r *plainRow) Height(width int) int { return 1 }

// dualRow implements both; ConfigureItem must win.
type dualRow struct {
	*Box
	configured bool
	set        bool
}

func (r *dualRow) Height(width int) int { return 1 }

func (r *dualRow) ConfigureItem(index int, item any) { r.configured = true }

func (r *dualRow) SetItem(item any) { r.set = true }

func TestProbeTemplate(t *testing.T) {
	t.Run("nil factory", func(t *testing.T) {
		_, err := probeTemplate(nil)
		assert.ErrorIs(t, err, ErrNoTemplate)
	})

	t.Run("factory returning nil", func(t *testing.T) {
		_, err := probeTemplate(func() Row { return nil })
		assert.ErrorIs(t, err, ErrNoTemplate)
	})

	t.Run("configurer", func(t *testing.T) {
		cap, err := probeTemplate(func() Row { return newRecordingRow() })
		require.NoError(t, err)
		assert.Equal(t, capabilityConfigure, cap)
	})

	t.Run("setter", func(t *testing.T) {
		cap, err := probeTemplate(func() Row { return &setterRow{Box: NewBox()} })
		require.NoError(t, err)
		assert.Equal(t, capabilitySet, cap)
	})

	t.Run("configurer preferred over setter", func(t *testing.T) {
		cap, err := probeTemplate(func() Row { return &dualRow{Box: NewBox()} })
		require.NoError(t, err)
		assert.Equal(t, capabilityConfigure, cap)
	})

	t.Run("neither interface is fatal", func(t *testing.T) {
		_, err := probeTemplate(func() Row { return &plainRow{Box: NewBox()} })
		assert.ErrorIs(t, err, ErrTemplateNotConfigurable)
	})
}

func TestSetItemTemplateRejectsUnusableRows(t *testing.T) {
	l := NewLazyListBox().SetScheduler(&stubScheduler{})
	l.SetAutoCalculateVisibleCount(false)
	l.SetVisibleCount(5)

	err := l.SetItemTemplate(func() Row { return &plainRow{Box: NewBox()} })
	assert.ErrorIs(t, err, ErrTemplateNotConfigurable)

	// A rejected template must leave the list without one.
	l.SetData(makeItems(10))
	assert.Empty(t, boundIndices(l))
}

func TestConfigurerRowsReceiveIndexAndItem(t *testing.T) {
	sched := &stubScheduler{}
	l := NewLazyListBox().SetScheduler(sched)
	l.SetAutoCalculateVisibleCount(false)
	l.SetVisibleCount(5)
	require.NoError(t, l.SetItemTemplate(func() Row { return newRecordingRow() }))
	l.SetData(makeItems(20))
	l.ScrollToIndex(8)

	for _, entry := range l.pool.rows {
		if !entry.visible {
			continue
		}
		row := entry.row.(*recordingRow)
		assert.Equal(t, entry.index, row.index)
		assert.Equal(t, l.items[entry.index], row.item)
	}
}

func TestSetterRowsReceiveItemOnly(t *testing.T) {
	sched := &stubScheduler{}
	l := NewLazyListBox().SetScheduler(sched)
	l.SetAutoCalculateVisibleCount(false)
	l.SetVisibleCount(5)
	require.NoError(t, l.SetItemTemplate(func() Row { return &setterRow{Box: NewBox()} }))
	l.SetData(makeItems(20))
	l.ScrollToIndex(3)

	for _, entry := range l.pool.rows {
		if !entry.visible {
			continue
		}
		row := entry.row.(*setterRow)
		assert.Equal(t, l.items[entry.index], row.item)
	}
}

func TestTemplateSwapRebuildsPool(t *testing.T) {
	sched := &stubScheduler{}
	l := NewLazyListBox().SetScheduler(sched)
	l.SetAutoCalculateVisibleCount(false)
	l.SetVisibleCount(5)
	require.NoError(t, l.SetItemTemplate(func() Row { return newRecordingRow() }))
	l.SetData(makeItems(20))
	require.IsType(t, &recordingRow{}, l.pool.slot(0).row)

	require.NoError(t, l.SetItemTemplate(func() Row { return &setterRow{Box: NewBox()} }))

	// No slot may keep a row created by the old factory, even though the
	// visible count and pool capacity are unchanged.
	require.Equal(t, 7, l.pool.size())
	for i := 0; i < l.pool.size(); i++ {
		assert.IsType(t, &setterRow{}, l.pool.slot(i).row)
	}
	for _, entry := range l.pool.rows {
		if entry.visible {
			assert.Equal(t, l.items[entry.index], entry.row.(*setterRow).item)
		}
	}
}

func TestCapabilityCacheResolvesOncePerType(t *testing.T) {
	cache := make(capabilityCache)

	first := cache.resolve(newRecordingRow())
	second := cache.resolve(newRecordingRow())

	assert.Equal(t, capabilityConfigure, first)
	assert.Equal(t, capabilityConfigure, second)
	assert.Len(t, cache, 1)

	cache.resolve(&setterRow{Box: NewBox()})
	assert.Len(t, cache, 2)
}
