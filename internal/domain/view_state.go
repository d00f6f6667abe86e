package domain

import "sort"

// IDSet множество id шаблонов
type IDSet map[int64]struct{}

// NewIDSet создает множество из переданных id
func NewIDSet(ids ...int64) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// IDSetFromRefs создает множество из результатов фильтрованного запроса
func IDSetFromRefs(refs []TemplateRef) IDSet {
	set := make(IDSet, len(refs))
	for _, ref := range refs {
		set[ref.ID] = struct{}{}
	}
	return set
}

func (s IDSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id int64) {
	s[id] = struct{}{}
}

func (s IDSet) Remove(id int64) {
	delete(s, id)
}

// Sorted возвращает id по возрастанию
func (s IDSet) Sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s IDSet) Clone() IDSet {
	clone := make(IDSet, len(s))
	for id := range s {
		clone[id] = struct{}{}
	}
	return clone
}

// ViewState текущая привязка шаблонов организации к оповещениям
type ViewState struct {
	SuccessTemplateIDs IDSet
	ErrorTemplateIDs   IDSet
}

// NewViewState создает пустое состояние
func NewViewState() ViewState {
	return ViewState{
		SuccessTemplateIDs: IDSet{},
		ErrorTemplateIDs:   IDSet{},
	}
}

// IDs возвращает множество для указанного типа оповещений
func (v ViewState) IDs(bucket Bucket) IDSet {
	if bucket == BucketError {
		return v.ErrorTemplateIDs
	}
	return v.SuccessTemplateIDs
}

// Clone возвращает глубокую копию состояния
func (v ViewState) Clone() ViewState {
	return ViewState{
		SuccessTemplateIDs: v.SuccessTemplateIDs.Clone(),
		ErrorTemplateIDs:   v.ErrorTemplateIDs.Clone(),
	}
}
