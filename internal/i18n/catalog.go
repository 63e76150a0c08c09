package i18n

type Key string

const (
	AppTitle            Key = "appTitle"
	ConsentMessage      Key = "consent.message"
	ConsentAccept       Key = "consent.accept"
	Goal                Key = "goal"
	DailyGoal           Key = "dailyGoal"
	StartTime           Key = "startTime"
	EndTime             Key = "endTime"
	ClearAll            Key = "clearAll"
	ConfirmClear        Key = "confirmClear"
	AddInterval         Key = "addInterval"
	TotalTime           Key = "totalTime"
	Remaining           Key = "remaining"
	GoalReached         Key = "goalReached"
	Overtime            Key = "overtime"
	Date                Key = "date"
	Duration            Key = "duration"
	InProgress          Key = "inProgress"
	DayTotal            Key = "dayTotal"
	ExportHistory       Key = "exportHistory"
	TodayIntervals      Key = "todayIntervals"
	History             Key = "history"
	StartBeforeEnd      Key = "startBeforeEnd"
	StartNotInFuture    Key = "startNotInFuture"
	BadClock            Key = "badClock"
	OpenNotLast         Key = "openNotLast"
	InvalidGoal         Key = "invalidGoal"
	Cancel              Key = "cancel"
	Save                Key = "save"
	NoIntervals         Key = "noIntervals"
	Edit                Key = "edit"
	Delete              Key = "delete"
	Hours               Key = "hours"
	Minutes             Key = "minutes"
	SetGoal             Key = "setGoal"
	EditGoal            Key = "editGoal"
	Remove              Key = "remove"
	EstimatedCompletion Key = "estimatedCompletion"
	Progress            Key = "progress"
	Running             Key = "running"
	Stopped             Key = "stopped"
	Settings            Key = "settings"
	Language            Key = "language"
	Dashboard           Key = "dashboard"
	ExportTodayCSV      Key = "export.todayCSV"
	ExportAllCSV        Key = "export.allCSV"
	ExportAllJSON       Key = "export.allJSON"
	ExportedTo          Key = "export.done"
	StartHint           Key = "startHint"
)

var catalogs = map[Lang]map[Key]string{
	EnUS: {
		AppTitle:            "Time Tracker",
		ConsentMessage:      "This application stores its data locally on this machine. No personal data is collected or shared.",
		ConsentAccept:       "Accept",
		Goal:                "Goal",
		DailyGoal:           "Daily Goal",
		StartTime:           "Start",
		EndTime:             "End",
		ClearAll:            "Clear all",
		ConfirmClear:        "Clear all of today's intervals?",
		AddInterval:         "Add",
		TotalTime:           "Total time",
		Remaining:           "Remaining",
		GoalReached:         "Goal reached! 🎉",
		Overtime:            "Overtime",
		Date:                "Date",
		Duration:            "Duration",
		InProgress:          "In progress",
		DayTotal:            "Day total",
		ExportHistory:       "Export history",
		TodayIntervals:      "Today's Intervals",
		History:             "History",
		StartBeforeEnd:      "Start time must be before end time",
		StartNotInFuture:    "Start time cannot be in the future",
		BadClock:            "Use the HH:MM format",
		OpenNotLast:         "Only the latest interval of today can be left open, and only while nothing is running",
		InvalidGoal:         "Enter hours and minutes (0-59) greater than zero",
		Cancel:              "Cancel",
		Save:                "Save",
		NoIntervals:         "No intervals recorded today.",
		Edit:                "Edit",
		Delete:              "Delete",
		Hours:               "Hours",
		Minutes:             "Minutes",
		SetGoal:             "Set Goal",
		EditGoal:            "Edit Goal",
		Remove:              "Remove",
		EstimatedCompletion: "Estimated completion at",
		Progress:            "Progress",
		Running:             "RUNNING",
		Stopped:             "STOPPED",
		Settings:            "Settings",
		Language:            "Language",
		Dashboard:           "Dashboard",
		ExportTodayCSV:      "Today (CSV)",
		ExportAllCSV:        "All days (CSV)",
		ExportAllJSON:       "Backup (JSON)",
		ExportedTo:          "Exported to",
		StartHint:           "Press space to start tracking",
	},
	PtBR: {
		AppTitle:            "Controle de Horas",
		ConsentMessage:      "Esta aplicação armazena seus dados localmente nesta máquina. Nenhum dado pessoal é coletado ou compartilhado.",
		ConsentAccept:       "Aceitar",
		Goal:                "Meta",
		DailyGoal:           "Meta Diária",
		StartTime:           "Início",
		EndTime:             "Fim",
		ClearAll:            "Limpar tudo",
		ConfirmClear:        "Limpar todos os intervalos de hoje?",
		AddInterval:         "Adicionar",
		TotalTime:           "Tempo total",
		Remaining:           "Restante",
		GoalReached:         "Meta atingida! 🎉",
		Overtime:            "Horas extras",
		Date:                "Data",
		Duration:            "Duração",
		InProgress:          "Em andamento",
		DayTotal:            "Total do dia",
		ExportHistory:       "Exportar histórico",
		TodayIntervals:      "Intervalos de Hoje",
		History:             "Histórico",
		StartBeforeEnd:      "O horário de início deve ser anterior ao horário de fim",
		StartNotInFuture:    "O horário de início não pode ser posterior ao momento atual",
		BadClock:            "Use o formato HH:MM",
		OpenNotLast:         "Só o último intervalo de hoje pode ficar aberto, e apenas sem outro em andamento",
		InvalidGoal:         "Informe horas e minutos (0-59) maiores que zero",
		Cancel:              "Cancelar",
		Save:                "Salvar",
		NoIntervals:         "Nenhum intervalo registrado hoje.",
		Edit:                "Editar",
		Delete:              "Excluir",
		Hours:               "Horas",
		Minutes:             "Minutos",
		SetGoal:             "Definir Meta",
		EditGoal:            "Editar Meta",
		Remove:              "Remover",
		EstimatedCompletion: "Previsão de conclusão às",
		Progress:            "Progresso",
		Running:             "EM ANDAMENTO",
		Stopped:             "PARADO",
		Settings:            "Configurações",
		Language:            "Idioma",
		Dashboard:           "Painel",
		ExportTodayCSV:      "Hoje (CSV)",
		ExportAllCSV:        "Todos os dias (CSV)",
		ExportAllJSON:       "Backup (JSON)",
		ExportedTo:          "Exportado para",
		StartHint:           "Pressione espaço para iniciar",
	},
	Es: {
		AppTitle:            "Control de Tiempo",
		ConsentMessage:      "Esta aplicación guarda sus datos localmente en esta máquina. No se recopilan ni comparten datos personales.",
		ConsentAccept:       "Aceptar",
		Goal:                "Meta",
		DailyGoal:           "Meta Diaria",
		StartTime:           "Inicio",
		EndTime:             "Fin",
		ClearAll:            "Borrar todo",
		ConfirmClear:        "¿Borrar todos los intervalos de hoy?",
		AddInterval:         "Añadir",
		TotalTime:           "Tiempo total",
		Remaining:           "Restante",
		GoalReached:         "¡Meta alcanzada! 🎉",
		Overtime:            "Horas extras",
		Date:                "Fecha",
		Duration:            "Duración",
		InProgress:          "En curso",
		DayTotal:            "Total del día",
		ExportHistory:       "Exportar historial",
		TodayIntervals:      "Intervalos de Hoy",
		History:             "Historial",
		StartBeforeEnd:      "La hora de inicio debe ser anterior a la hora de fin",
		StartNotInFuture:    "La hora de inicio no puede ser en el futuro",
		BadClock:            "Use el formato HH:MM",
		OpenNotLast:         "Solo el último intervalo de hoy puede quedar abierto, y solo si no hay otro en curso",
		InvalidGoal:         "Ingrese horas y minutos (0-59) mayores que cero",
		Cancel:              "Cancelar",
		Save:                "Guardar",
		NoIntervals:         "No hay intervalos registrados hoy.",
		Edit:                "Editar",
		Delete:              "Eliminar",
		Hours:               "Horas",
		Minutes:             "Minutos",
		SetGoal:             "Definir Meta",
		EditGoal:            "Editar Meta",
		Remove:              "Eliminar",
		EstimatedCompletion: "Finalización estimada a las",
		Progress:            "Progreso",
		Running:             "EN CURSO",
		Stopped:             "DETENIDO",
		Settings:            "Ajustes",
		Language:            "Idioma",
		Dashboard:           "Panel",
		ExportTodayCSV:      "Hoy (CSV)",
		ExportAllCSV:        "Todos los días (CSV)",
		ExportAllJSON:       "Copia de seguridad (JSON)",
		ExportedTo:          "Exportado a",
		StartHint:           "Pulsa espacio para empezar",
	},
}
