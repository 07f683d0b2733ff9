package infrastructure

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Task représente une tâche à exécuter
type Task func() error

// WorkerPool gère un pool de workers pour traiter des lots de tâches en
// parallèle. L'appelant soumet un lot via Run et récupère la première erreur
// rencontrée ; le pool reste réutilisable pour les lots suivants.
// Stop ne doit pas être appelé pendant qu'un lot est en cours
type WorkerPool struct {
	workerCount int
	jobs        chan func()
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// NewWorkerPool crée un nouveau pool de workers.
// workerCount <= 0 utilise le nombre de CPU disponibles
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	return &WorkerPool{
		workerCount: workerCount,
		jobs:        make(chan func(), workerCount*2),
	}
}

// worker est la routine d'exécution des tâches
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for job := range wp.jobs {
		job()
	}
}

// Start démarre les workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Run soumet un lot de tâches et attend que tout le lot soit terminé.
// Retourne la première erreur rencontrée (les autres tâches du lot vont
// malgré tout jusqu'au bout). Si le pool est arrêté, les tâches sont
// exécutées de manière synchrone
func (wp *WorkerPool) Run(tasks []Task) error {
	var batch sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	batch.Add(len(tasks))
	for _, task := range tasks {
		t := task
		job := func() {
			defer batch.Done()
			record(t())
		}

		if wp.stopped.Load() {
			job()
			continue
		}
		wp.jobs <- job
	}

	batch.Wait()
	return firstErr
}

// Stop arrête le pool et attend la fin des workers
func (wp *WorkerPool) Stop() {
	if wp.stopped.CompareAndSwap(false, true) {
		close(wp.jobs)
	}
	wp.wg.Wait()
}
