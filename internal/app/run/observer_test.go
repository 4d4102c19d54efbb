package run

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/domain"
)

type recordObserver struct {
	startCalls int
	total      int
	dirs       []string
	diags      []string
	done       []string
	events     []string
}

func (o *recordObserver) OnStart(eff config.EffectiveConfig, folders domain.Folders, total int) {
	o.startCalls++
	o.total = total
	o.events = append(o.events, "start")
}

func (o *recordObserver) OnDirCreated(path string) {
	o.dirs = append(o.dirs, path)
	o.events = append(o.events, "dir:"+path)
}

func (o *recordObserver) OnDiagnostic(file domain.MediaFile, msg string) {
	o.diags = append(o.diags, file.Name+": "+msg)
	o.events = append(o.events, "diag:"+file.Name)
}

func (o *recordObserver) OnFileDone(idx, total int, res domain.FileResult) {
	o.done = append(o.done, res.Name+"="+res.Status)
	o.events = append(o.events, "done:"+res.Name)
}

func TestExecute_EmitsEventsInOrder(t *testing.T) {
	e := newEnv(t, false)
	e.touch(t, "/src/a.jpg", "x")
	e.touch(t, "/src/b.jpg", "x")

	obs := &recordObserver{}
	e.run(stubBackend{
		values: map[string]string{"a.jpg|capture_date": "2015:02:12 00:05:58"},
		diags:  map[string]string{"b.jpg|model": "warning: bad tag"},
	}, obs)

	assert.Equal(t, 1, obs.startCalls)
	assert.Equal(t, 2, obs.total)
	assert.Equal(t, []string{
		"start",
		"dir:/lib/2015",
		"dir:/lib/2015/2015-02",
		"done:a.jpg",
		"diag:b.jpg",
		"done:b.jpg",
	}, obs.events, "事件顺序")
	assert.Equal(t, []string{"a.jpg=moved", "b.jpg=unsorted"}, obs.done)
	if assert.Len(t, obs.diags, 1) {
		assert.Contains(t, obs.diags[0], "warning: bad tag")
	}
}
