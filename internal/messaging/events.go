package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	// Report and alert events
	EventReportCreated = "report.created"
	EventAlertRaised   = "alert.raised"
	EventAlertHandled  = "alert.handled"

	// Patient events
	EventPatientCreated       = "patient.created"
	EventPatientUpdated       = "patient.updated"
	EventPatientStatusChanged = "patient.status_changed"

	// Care activity events
	EventInterventionLogged = "intervention.logged"
	EventScheduleCreated    = "schedule.created"
	EventScheduleUpdated    = "schedule.updated"

	// Education events
	EventEducationPushed = "education.pushed"
	EventEducationRead   = "education.read"

	// Problem list events
	EventProblemIdentified = "problem.identified"
	EventProblemResolved   = "problem.resolved"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		ServiceName: "monitoring-service",
	}
}

// ReportCreatedEvent signals a new daily check-in was ingested.
type ReportCreatedEvent struct {
	BaseEvent
	Data ReportCreatedData `json:"data"`
}

type ReportCreatedData struct {
	ReportID   string `json:"report_id"`
	PatientID  string `json:"patient_id"`
	ReportDate string `json:"report_date"`
	AlertLevel string `json:"alert_level"`
}

func NewReportCreatedEvent(reportID, patientID, reportDate, alertLevel string) ReportCreatedEvent {
	return ReportCreatedEvent{
		BaseEvent: NewBaseEvent(EventReportCreated),
		Data: ReportCreatedData{
			ReportID:   reportID,
			PatientID:  patientID,
			ReportDate: reportDate,
			AlertLevel: alertLevel,
		},
	}
}

// AlertRaisedEvent signals a non-green check-in awaiting triage.
type AlertRaisedEvent struct {
	BaseEvent
	Data AlertRaisedData `json:"data"`
}

type AlertRaisedData struct {
	ReportID   string    `json:"report_id"`
	PatientID  string    `json:"patient_id"`
	AlertLevel string    `json:"alert_level"`
	ReportedAt time.Time `json:"reported_at"`
}

func NewAlertRaisedEvent(reportID, patientID, alertLevel string, reportedAt time.Time) AlertRaisedEvent {
	return AlertRaisedEvent{
		BaseEvent: NewBaseEvent(EventAlertRaised),
		Data: AlertRaisedData{
			ReportID:   reportID,
			PatientID:  patientID,
			AlertLevel: alertLevel,
			ReportedAt: reportedAt,
		},
	}
}

// AlertHandledEvent signals an alert was resolved by staff.
type AlertHandledEvent struct {
	BaseEvent
	Data AlertHandledData `json:"data"`
}

type AlertHandledData struct {
	ReportID  string `json:"report_id"`
	HandlerID string `json:"handler_id"`
	Action    string `json:"action"`
}

func NewAlertHandledEvent(reportID, handlerID, action string) AlertHandledEvent {
	return AlertHandledEvent{
		BaseEvent: NewBaseEvent(EventAlertHandled),
		Data: AlertHandledData{
			ReportID:  reportID,
			HandlerID: handlerID,
			Action:    action,
		},
	}
}

// PatientCreatedEvent represents a patient enrollment event
type PatientCreatedEvent struct {
	BaseEvent
	Data PatientCreatedData `json:"data"`
}

type PatientCreatedData struct {
	PatientID   string `json:"patient_id"`
	FullName    string `json:"full_name"`
	SurgeryDate string `json:"surgery_date"`
	Status      string `json:"status"`
}

func NewPatientCreatedEvent(patientID, fullName, surgeryDate, status string) PatientCreatedEvent {
	return PatientCreatedEvent{
		BaseEvent: NewBaseEvent(EventPatientCreated),
		Data: PatientCreatedData{
			PatientID:   patientID,
			FullName:    fullName,
			SurgeryDate: surgeryDate,
			Status:      status,
		},
	}
}

// PatientUpdatedEvent represents a patient record edit
type PatientUpdatedEvent struct {
	BaseEvent
	Data PatientUpdatedData `json:"data"`
}

type PatientUpdatedData struct {
	PatientID string `json:"patient_id"`
	FullName  string `json:"full_name"`
}

func NewPatientUpdatedEvent(patientID, fullName string) PatientUpdatedEvent {
	return PatientUpdatedEvent{
		BaseEvent: NewBaseEvent(EventPatientUpdated),
		Data: PatientUpdatedData{
			PatientID: patientID,
			FullName:  fullName,
		},
	}
}

// PatientStatusChangedEvent represents a patient status change event
type PatientStatusChangedEvent struct {
	BaseEvent
	Data PatientStatusChangedData `json:"data"`
}

type PatientStatusChangedData struct {
	PatientID string `json:"patient_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func NewPatientStatusChangedEvent(patientID, oldStatus, newStatus string) PatientStatusChangedEvent {
	return PatientStatusChangedEvent{
		BaseEvent: NewBaseEvent(EventPatientStatusChanged),
		Data: PatientStatusChangedData{
			PatientID: patientID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	}
}

// InterventionLoggedEvent represents a logged care action
type InterventionLoggedEvent struct {
	BaseEvent
	Data InterventionLoggedData `json:"data"`
}

type InterventionLoggedData struct {
	InterventionID string `json:"intervention_id"`
	PatientID      string `json:"patient_id"`
	Type           string `json:"type"`
	Outcome        string `json:"outcome"`
	CreatedBy      string `json:"created_by"`
}

func NewInterventionLoggedEvent(interventionID, patientID, interventionType, outcome, createdBy string) InterventionLoggedEvent {
	return InterventionLoggedEvent{
		BaseEvent: NewBaseEvent(EventInterventionLogged),
		Data: InterventionLoggedData{
			InterventionID: interventionID,
			PatientID:      patientID,
			Type:           interventionType,
			Outcome:        outcome,
			CreatedBy:      createdBy,
		},
	}
}

// EducationEvent represents an education push lifecycle change
type EducationEvent struct {
	BaseEvent
	Data EducationEventData `json:"data"`
}

type EducationEventData struct {
	PushID     string `json:"push_id"`
	PatientID  string `json:"patient_id"`
	MaterialID string `json:"material_id"`
	Category   string `json:"category"`
	PushType   string `json:"push_type"`
}

func NewEducationEvent(eventType, pushID, patientID, materialID, category, pushType string) EducationEvent {
	return EducationEvent{
		BaseEvent: NewBaseEvent(eventType),
		Data: EducationEventData{
			PushID:     pushID,
			PatientID:  patientID,
			MaterialID: materialID,
			Category:   category,
			PushType:   pushType,
		},
	}
}

// ProblemEvent represents a care problem lifecycle change
type ProblemEvent struct {
	BaseEvent
	Data ProblemEventData `json:"data"`
}

type ProblemEventData struct {
	ProblemID string `json:"problem_id"`
	PatientID string `json:"patient_id"`
	Category  string `json:"category"`
	Severity  string `json:"severity"`
	Status    string `json:"status"`
}

func NewProblemEvent(eventType, problemID, patientID, category, severity, status string) ProblemEvent {
	return ProblemEvent{
		BaseEvent: NewBaseEvent(eventType),
		Data: ProblemEventData{
			ProblemID: problemID,
			PatientID: patientID,
			Category:  category,
			Severity:  severity,
			Status:    status,
		},
	}
}

// ScheduleEvent represents a follow-up schedule change
type ScheduleEvent struct {
	BaseEvent
	Data ScheduleEventData `json:"data"`
}

type ScheduleEventData struct {
	ScheduleID    string `json:"schedule_id"`
	PatientID     string `json:"patient_id"`
	ScheduleType  string `json:"schedule_type"`
	ScheduledDate string `json:"scheduled_date"`
	Status        string `json:"status"`
}

func NewScheduleEvent(eventType, scheduleID, patientID, scheduleType, scheduledDate, status string) ScheduleEvent {
	return ScheduleEvent{
		BaseEvent: NewBaseEvent(eventType),
		Data: ScheduleEventData{
			ScheduleID:    scheduleID,
			PatientID:     patientID,
			ScheduleType:  scheduleType,
			ScheduledDate: scheduledDate,
			Status:        status,
		},
	}
}
