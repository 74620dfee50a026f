package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recorder struct {
	Base
	log *[]string
}

func (r *recorder) Start()         { *r.log = append(*r.log, r.SceneName+":start") }
func (r *recorder) Stop()          { *r.log = append(*r.log, r.SceneName+":stop") }
func (r *recorder) Update(float64) { *r.log = append(*r.log, r.SceneName+":update") }

func TestManagerLoadScene(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewManager(zap.New(core))
	var calls []string
	a := &recorder{Base: Base{SceneName: "a"}, log: &calls}
	b := &recorder{Base: Base{SceneName: "b"}, log: &calls}

	m.Update(1)
	assert.Nil(t, m.Current())

	m.LoadScene(a)
	m.Update(1)
	m.LoadScene(b)
	m.Update(1)

	assert.Equal(t, []string{"a:start", "a:update", "a:stop", "b:start", "b:update"}, calls)
	assert.Same(t, b, m.Current())
	assert.Equal(t, 2, logs.FilterMessage("starting scene").Len())
	assert.Equal(t, 1, logs.FilterMessage("stopping scene").Len())
}

func TestManagerIgnoresNil(t *testing.T) {
	m := NewManager(nil)
	m.LoadScene(nil)
	assert.Nil(t, m.Current())
}
