// Package bracket владеет единственным мутируемым состоянием агрегатора:
// раскладкой матчей по слотам групп и идентификатором финала. Состояние живёт
// в памяти процесса и не переживает рестарт, это осознанное решение, записи
// матчей принадлежат matches-service.
package bracket

import "sync"

// Store потокобезопасно хранит назначения. Один экземпляр на процесс,
// передаётся явно: никаких пакетных глобалов.
type Store struct {
	mu         sync.Mutex
	groupOrder []string
	slots      map[string][]*int
	finalID    *int
}

// Snapshot держит копию текущих назначений. Изменения снапшота не затрагивают Store.
type Snapshot struct {
	GroupOrder   []string
	Groups       map[string][]*int
	FinalMatchID *int
}

// NewStore создаёт хранилище со всеми пустыми слотами. Порядок groupIDs
// фиксирует порядок групп в представлении.
func NewStore(groupIDs []string, slotsPerGroup int) *Store {
	s := &Store{
		groupOrder: append([]string(nil), groupIDs...),
		slots:      make(map[string][]*int, len(groupIDs)),
	}
	for _, id := range groupIDs {
		s.slots[id] = make([]*int, slotsPerGroup)
	}
	return s
}

func (s *Store) GroupIDs() []string {
	return append([]string(nil), s.groupOrder...)
}

func (s *Store) HasGroup(groupID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.slots[groupID]
	return ok
}

func (s *Store) SlotCount(groupID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots[groupID])
}

// SetSlot записывает matchID (или nil для очистки) в слот группы и всегда
// сбрасывает финал: смена любого группового назначения может поменять
// чемпионов, так что ранее вычисленный финал становится недействительным.
// Это каскад из доменной логики, не побочный эффект.
func (s *Store) SetSlot(groupID string, slotIndex int, matchID *int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, ok := s.slots[groupID]
	if !ok || slotIndex < 0 || slotIndex >= len(slots) {
		return
	}
	slots[slotIndex] = copyID(matchID)
	s.finalID = nil
}

func (s *Store) FinalMatchID() *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyID(s.finalID)
}

func (s *Store) SetFinalMatchID(matchID *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalID = copyID(matchID)
}

// Contains сообщает, занят ли matchID каким-либо слотом или финалом.
func (s *Store) Contains(matchID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slots := range s.slots {
		for _, id := range slots {
			if id != nil && *id == matchID {
				return true
			}
		}
	}
	return s.finalID != nil && *s.finalID == matchID
}

// Snapshot возвращает глубокую копию состояния для одного прохода композиции.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make(map[string][]*int, len(s.slots))
	for groupID, slots := range s.slots {
		copied := make([]*int, len(slots))
		for i, id := range slots {
			copied[i] = copyID(id)
		}
		groups[groupID] = copied
	}
	return Snapshot{
		GroupOrder:   append([]string(nil), s.groupOrder...),
		Groups:       groups,
		FinalMatchID: copyID(s.finalID),
	}
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
