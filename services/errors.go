package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
// Тексты валидационных ошибок на испанском: они уходят в UI как есть.
var (
	// Ошибки валидации назначения слота
	ErrGroupNotFound      = errors.New("grupo inválido")
	ErrSlotIndexInvalid   = errors.New("posición de slot inválida")
	ErrMatchIDInvalid     = errors.New("identificador de partido inválido")
	ErrMatchNotFound      = errors.New("el partido seleccionado no existe")
	ErrMatchAlreadyUsed   = errors.New("ese partido ya está asignado en el torneo")
	ErrMatchTeamsConflict = errors.New("el partido seleccionado tiene equipos duplicados")
	ErrTeamAlreadyBooked  = errors.New("uno de los equipos ya tiene otro partido asignado en el bracket")

	// Запрошен не тот турнир: агрегатор обслуживает ровно один.
	ErrTournamentNotFound = errors.New("torneo no encontrado")
)
