package memory

// journal deshace las escrituras de una transacción en orden inverso.
// Las funciones de undo se ejecutan con Store.mu tomado.
type journal struct {
	undo []func()
}

func (j *journal) record(fn func()) {
	if j == nil || fn == nil {
		return
	}
	j.undo = append(j.undo, fn)
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}
