package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/events"
	"go-hr-admin/internal/messaging/kafka"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"
	"go-hr-admin/internal/shared/dbutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeListKeyPrefix = "employees:list:"
	EmployeeListVersion   = "employees:list:version"
	employeeListTTL       = 10 * time.Minute
)

// GetEmployeeListKey namespaces list entries by cache generation so a
// single INCR of the version invalidates every cached query.
func GetEmployeeListKey(version string, f ListFilter) string {
	return fmt.Sprintf("%s%s:%d:%d:%s:%s", EmployeeListKeyPrefix, version,
		f.Limit, f.Offset, strings.ToLower(f.Department), strings.ToLower(f.Q))
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, idOrCode string) (EmployeeResponse, error)
	List(ctx context.Context, q ListEmployeesQuery) (ListResult, error)
	Update(ctx context.Context, idOrCode string, req UpdateEmployeeRequest) (EmployeeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func validateEmployee(req any, joinedOn string) (time.Time, error) {
	violations := apperror.ValidateStruct(req)
	joined, err := apperror.ParseISODate(joinedOn)
	if err != nil && joinedOn != "" && !hasViolation(violations, "joinedOn") {
		violations = append(violations, apperror.FieldViolation{
			Field:   "joinedOn",
			Message: "Joined On must be an ISO date (YYYY-MM-DD)",
		})
	}
	if len(violations) > 0 {
		return time.Time{}, apperror.Validation(violations...)
	}
	return joined, nil
}

func hasViolation(violations []apperror.FieldViolation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid), // Propagasi ke logs
		zap.String("employee_id", req.EmployeeID),
		zap.String("email", req.Email),
	)

	joinedOn, err := validateEmployee(req, req.JoinedOn)
	if err != nil {
		s.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	code := strings.ToUpper(strings.TrimSpace(req.EmployeeID))
	if code == "" {
		codes, err := qtx.ListCodes(ctx)
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		code = NextEmployeeCode(codes)
	}

	empl := &Employee{
		EmployeeCode:  code,
		FirebaseUID:   optionalString(req.FirebaseUID),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Department:    strings.TrimSpace(req.Department),
		RoleID:        roleOrDefault(req.RoleID),
		Phone:         req.Phone,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		JoinedOn:      joinedOn,
		Status:        statusOrDefault(req.Status),
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("employee_id", code), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		eventID := uuid.NewString()
		outboxEvent, err := kafka.NewOutboxEvent(eventID, rid, "employee", empl.EmployeeCode,
			events.EmployeeCreatedType, events.EmployeeCreatedTopic,
			events.EmployeeCreatedEvent{
				EventID:    eventID,
				EventType:  events.EmployeeCreatedType,
				RequestID:  rid, // Propagasi ke async events
				EmployeeID: empl.EmployeeCode,
				Name:       empl.Name,
				Email:      empl.Email,
				Department: empl.Department,
				RoleID:     empl.RoleID,
				OccurredAt: time.Now().UTC(),
			})
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.EmployeeCode),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("id", empl.ID),
		zap.String("employee_id", empl.EmployeeCode),
	)

	return mapToResponse(*empl), nil
}

func (s *service) find(ctx context.Context, repo Repository, idOrCode string) (*Employee, error) {
	idOrCode = strings.TrimSpace(idOrCode)
	if id, err := strconv.ParseUint(idOrCode, 10, 64); err == nil {
		return repo.FindByID(ctx, uint(id))
	}
	return repo.FindByCode(ctx, strings.ToUpper(idOrCode))
}

func (s *service) GetByID(ctx context.Context, idOrCode string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("id", idOrCode))

	empl, err := s.find(ctx, s.repo, idOrCode)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("id", idOrCode), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) List(ctx context.Context, q ListEmployeesQuery) (ListResult, error) {
	filter := ListFilter{
		Limit:      dbutil.ClampLimit(q.Limit),
		Offset:     max(q.Offset, 0),
		Department: strings.TrimSpace(q.Department),
		Q:          strings.TrimSpace(q.Q),
	}
	cacheKey := GetEmployeeListKey(s.listVersion(ctx), filter)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp ListResult
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight supaya query identik yang datang bersamaan hanya sekali ke DB
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		emps, total, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := ListResult{
			Items:  mapToListResponse(emps),
			Total:  total,
			Limit:  filter.Limit,
			Offset: filter.Offset,
		}

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, employeeListTTL).Err(); err != nil {
					s.logger.Warn("cache employee list failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return ListResult{}, err
	}

	return v.(ListResult), nil
}

func (s *service) Update(ctx context.Context, idOrCode string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("id", idOrCode))

	joinedOn, err := validateEmployee(req, req.JoinedOn)
	if err != nil {
		s.logger.Warn("update employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := s.find(ctx, qtx, idOrCode)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.String("id", idOrCode), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FirebaseUID = optionalString(req.FirebaseUID)
	empl.Name = strings.TrimSpace(req.Name)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Department = strings.TrimSpace(req.Department)
	empl.RoleID = roleOrDefault(req.RoleID)
	empl.Phone = req.Phone
	empl.ContactNumber = req.ContactNumber
	empl.Address = req.Address
	empl.JoinedOn = joinedOn
	empl.Status = statusOrDefault(req.Status)

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", empl.EmployeeCode))

	return mapToResponse(*empl), nil
}

func (s *service) listVersion(ctx context.Context) string {
	if s.rdb == nil {
		return "0"
	}
	v, err := s.rdb.Get(ctx, EmployeeListVersion).Result()
	if err != nil {
		return "0"
	}
	return v
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, EmployeeListVersion).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", EmployeeListVersion),
		)
	}
}

func roleOrDefault(id uint) uint {
	if id == 0 {
		return domain.RoleIDEmployee
	}
	return id
}

func statusOrDefault(status string) string {
	if status == "" {
		return StatusActive
	}
	return status
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            empl.ID,
		EmployeeID:    empl.EmployeeCode,
		Name:          empl.Name,
		Email:         empl.Email,
		Department:    empl.Department,
		RoleID:        empl.RoleID,
		Role:          domain.RoleName(empl.RoleID),
		Phone:         empl.Phone,
		ContactNumber: empl.ContactNumber,
		Address:       empl.Address,
		JoinedOn:      empl.JoinedOn.Format(apperror.ISODateLayout),
		Status:        empl.Status,
		CreatedAt:     empl.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     empl.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if empl.FirebaseUID != nil {
		resp.FirebaseUID = *empl.FirebaseUID
	}
	return resp
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}
