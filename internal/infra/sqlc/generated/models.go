package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Bookings struct {
	ID                  uuid.UUID          `json:"id"`
	UserID              pgtype.UUID        `json:"user_id"`
	RoomID              uuid.UUID          `json:"room_id"`
	CheckIn             pgtype.Date        `json:"check_in"`
	CheckOut            pgtype.Date        `json:"check_out"`
	DurationMonths      int32              `json:"duration_months"`
	TotalPrice          int64              `json:"total_price"`
	PaymentMethod       string             `json:"payment_method"`
	GuestCount          int32              `json:"guest_count"`
	ContactName         string             `json:"contact_name"`
	ContactEmail        string             `json:"contact_email"`
	ContactPhone        string             `json:"contact_phone"`
	IdentityDocumentRef pgtype.Text        `json:"identity_document_ref"`
	PaymentProofRef     pgtype.Text        `json:"payment_proof_ref"`
	SpecialRequests     string             `json:"special_requests"`
	Status              string             `json:"status"`
	PaymentDueAt        pgtype.Timestamptz `json:"payment_due_at"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
	UpdatedAt           pgtype.Timestamptz `json:"updated_at"`
}

type NotificationJobs struct {
	ID        uuid.UUID          `json:"id"`
	Kind      string             `json:"kind"`
	Topic     string             `json:"topic"`
	Payload   []byte             `json:"payload"`
	RunAt     pgtype.Timestamptz `json:"run_at"`
	Status    string             `json:"status"`
	Attempts  int32              `json:"attempts"`
	LastError pgtype.Text        `json:"last_error"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Rooms struct {
	ID           uuid.UUID          `json:"id"`
	Number       string             `json:"number"`
	Floor        int32              `json:"floor"`
	MonthlyPrice int64              `json:"monthly_price"`
	Capacity     int32              `json:"capacity"`
	IsAvailable  bool               `json:"is_available"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type Users struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	PasswordHash string             `json:"password_hash"`
	Role         string             `json:"role"`
	IsActive     bool               `json:"is_active"`
	LastLogin    pgtype.Timestamptz `json:"last_login"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}
