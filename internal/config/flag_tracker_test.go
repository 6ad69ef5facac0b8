package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagTracker(t *testing.T) {
	tracker := NewFlagTracker()

	assert.False(t, tracker.WasSet("sensitivity"))

	tracker.Set("sensitivity")
	assert.True(t, tracker.WasSet("sensitivity"))
	assert.False(t, tracker.WasSet("recursive"))
}

func TestNewFlagTrackerWithFlags(t *testing.T) {
	tracker := NewFlagTrackerWithFlags(map[string]bool{"sort": true})

	assert.True(t, tracker.WasSet("sort"))
	assert.False(t, tracker.WasSet("sensitivity"))
}

func TestNewFlagTrackerWithFlagsCopies(t *testing.T) {
	source := map[string]bool{"sort": true}
	tracker := NewFlagTrackerWithFlags(source)

	source["sensitivity"] = true
	assert.False(t, tracker.WasSet("sensitivity"))
}

func TestFlagTrackerMerge(t *testing.T) {
	tracker := NewFlagTrackerWithFlags(map[string]bool{
		"set-string": true,
		"set-float":  true,
		"set-bool":   true,
		"set-slice":  true,
	})

	assert.Equal(t, "override", tracker.MergeString("base", "override", "set-string"))
	assert.Equal(t, "base", tracker.MergeString("base", "override", "unset"))

	assert.Equal(t, 0.5, tracker.MergeFloat(0.9, 0.5, "set-float"))
	assert.Equal(t, 0.9, tracker.MergeFloat(0.9, 0.5, "unset"))

	assert.False(t, tracker.MergeBool(true, false, "set-bool"))
	assert.True(t, tracker.MergeBool(true, false, "unset"))

	assert.Equal(t, []string{"b"}, tracker.MergeStringSlice([]string{"a"}, []string{"b"}, "set-slice"))
	assert.Equal(t, []string{"a"}, tracker.MergeStringSlice([]string{"a"}, []string{"b"}, "unset"))
}

func TestFlagTrackerConcurrent(t *testing.T) {
	tracker := NewFlagTracker()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Set("flag")
			tracker.WasSet("flag")
		}()
	}
	wg.Wait()

	assert.True(t, tracker.WasSet("flag"))
}
