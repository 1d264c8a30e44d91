package licensehandler

import (
	"bytes"
	"context"
	"io"
	"slices"
	"time"
	authorizationhistorystore "workshift-backend/lib/authorization/history-store"
	authorizationstore "workshift-backend/lib/authorization/store"
	"workshift-backend/lib/eligibility"
	employeestore "workshift-backend/lib/employee/store"
	xlsexport "workshift-backend/lib/export/xls"
	filestorage "workshift-backend/lib/file-storage"
	licensestore "workshift-backend/lib/license/store"
	"workshift-backend/models"
	authorizationapimodels "workshift-backend/models/api/authorization"
	licenseapimodels "workshift-backend/models/api/license"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthorizationOpener alta de la autorizacion que acompana a una licencia ordinaria
type AuthorizationOpener interface {
	Open(actorID string, data authorizationapimodels.AuthorizationCreate) (id string, err error)
}

type Provider interface {
	Create(actorID string, role models.UserRole, data licenseapimodels.LicenseCreate) (*licenseapimodels.CreateResult, error)
	Update(actorID string, role models.UserRole, id string, data licenseapimodels.LicenseEdit) error
	Delete(ctx context.Context, actorID string, role models.UserRole, id string) error
	Get(actorID string, role models.UserRole, id string) (*licenseapimodels.LicenseView, error)
	ListByEmployee(actorID string, role models.UserRole, employeeID string) ([]licenseapimodels.LicenseView, error)
	ListByDate(date time.Time) ([]licenseapimodels.LicenseView, error)
	ExportByDate(date time.Time) (*bytes.Buffer, error)
	UploadDocument(ctx context.Context, actorID string, role models.UserRole, id string, file Document) error
	GetDocument(ctx context.Context, actorID string, role models.UserRole, id string) (body []byte, fileName string, err error)
}

type Document struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

func NewHandler(db *gorm.DB, checker eligibility.Provider, opener AuthorizationOpener, storage filestorage.Provider) Provider {
	return impl{
		db:            db,
		store:         licensestore.NewInstance(db),
		employeeStore: employeestore.NewInstance(db),
		checker:       checker,
		opener:        opener,
		storage:       storage,
	}
}

type impl struct {
	db            *gorm.DB
	store         licensestore.Provider
	employeeStore employeestore.Provider
	checker       eligibility.Provider
	opener        AuthorizationOpener
	storage       filestorage.Provider
}

func (i impl) getLogger(employeeID, licenseID string) *log.Entry {
	logger := log.WithField("employee_id", employeeID)
	if licenseID != "" {
		logger = logger.WithField("license_id", licenseID)
	}
	return logger
}

func (i impl) Create(actorID string, role models.UserRole, data licenseapimodels.LicenseCreate) (*licenseapimodels.CreateResult, error) {
	employeeID := data.EmployeeID
	if employeeID == "" {
		employeeID = actorID
	}
	if employeeID != actorID && !role.CanResolveAuthorizations() {
		return nil, models.NewForbiddenError("solo jefes y administradores pueden cargar licencias de otro empleado")
	}
	if err := data.Validate(); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	dateFrom, dateTo, err := data.GetDates()
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	employee, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, models.NewNotFoundError("empleado %s no encontrado", employeeID)
	}

	if err = i.checkEligible(employeeID, dateFrom, dateTo); err != nil {
		return nil, err
	}
	if err = i.checkOverlap(employeeID, dateFrom, dateTo, ""); err != nil {
		return nil, err
	}

	rec := dbmodels.License{
		EmployeeID:   employeeID,
		Type:         data.Type,
		Status:       data.Type.InitialStatus(),
		Observations: data.Observations,
	}
	rec.SetDates(dateFrom, dateTo)
	if err = rec.Validate(); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return nil, errors.Wrap(err, "error al guardar la licencia")
	}
	logger := i.getLogger(employeeID, id)
	result := &licenseapimodels.CreateResult{
		LicenseID: id,
		Status:    rec.Status,
	}
	if !rec.Type.RequiresAuthorization() {
		logger.WithField("type", rec.Type).Info("licencia aprobada automaticamente")
		return result, nil
	}

	authorizationID, err := i.opener.Open(actorID, authorizationapimodels.AuthorizationCreate{
		Type:         models.AuthorizationOrdinaryLeave,
		EmployeeID:   employeeID,
		LicenseID:    &id,
		Observations: data.Observations,
	})
	if err != nil {
		// sin autorizacion la licencia pendiente no puede resolverse nunca
		if _, delErr := i.store.Delete(id, []models.LicenseStatus{models.LicensePending}); delErr != nil {
			logger.WithError(delErr).Error("error al eliminar la licencia sin autorizacion")
		}
		return nil, errors.Wrap(err, "no se pudo crear la autorizacion de la licencia")
	}
	result.AuthorizationID = authorizationID
	logger.WithField("authorization_id", authorizationID).Info("licencia ordinaria pendiente de autorizacion")
	return result, nil
}

func (i impl) Update(actorID string, role models.UserRole, id string, data licenseapimodels.LicenseEdit) error {
	rec, err := i.getOwned(actorID, role, id)
	if err != nil {
		return err
	}
	if rec.Status != models.LicensePending {
		return models.NewConflictError("solo se pueden modificar licencias pendientes, estado actual: %s", rec.Status)
	}
	dateFrom, dateTo, err := data.GetDates()
	if err != nil {
		return models.NewValidationError(err.Error())
	}
	if err = i.checkEligible(rec.EmployeeID, dateFrom, dateTo); err != nil {
		return err
	}
	if err = i.checkOverlap(rec.EmployeeID, dateFrom, dateTo, rec.ID); err != nil {
		return err
	}
	rec.SetDates(dateFrom, dateTo)
	updMap := map[string]interface{}{
		"date_from":    rec.DateFrom,
		"date_to":      rec.DateTo,
		"days":         rec.Days,
		"observations": data.Observations,
	}
	if err = i.store.Update(id, updMap); err != nil {
		return errors.Wrap(err, "error al actualizar la licencia")
	}
	i.getLogger(rec.EmployeeID, id).Info("licencia actualizada")
	return nil
}

// Delete licencias pendientes (con su autorizacion pendiente); el admin tambien puede quitar
// las aprobadas sin autorizacion. Una autorizacion resuelta no se borra nunca.
func (i impl) Delete(ctx context.Context, actorID string, role models.UserRole, id string) error {
	rec, err := i.getOwned(actorID, role, id)
	if err != nil {
		return err
	}
	allowed := []models.LicenseStatus{models.LicensePending}
	if role.IsAdmin() {
		allowed = append(allowed, models.LicenseApproved)
	}
	if !slices.Contains(allowed, rec.Status) {
		return models.NewConflictError("la licencia esta %s y no se puede eliminar", rec.Status)
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := dropPendingAuthorization(tx, id); err != nil {
			return err
		}
		exists, err := authorizationstore.NewInstance(tx).ExistsFor(models.LicenseRef(id))
		if err != nil {
			return errors.Wrap(err, "error al buscar autorizaciones de la licencia")
		}
		if exists {
			return models.NewConflictError("la licencia tiene una autorizacion resuelta y no se puede eliminar")
		}
		deleted, err := licensestore.NewInstance(tx).Delete(id, allowed)
		if err != nil {
			return errors.Wrap(err, "error al eliminar la licencia")
		}
		if !deleted {
			return models.NewConflictError("la licencia cambio de estado y no se puede eliminar")
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger := i.getLogger(rec.EmployeeID, id)
	if rec.DocumentKey != "" && i.storage != nil {
		if err = i.storage.RemoveFile(ctx, rec.DocumentKey); err != nil {
			logger.WithError(err).Warn("no se pudo eliminar el documento de la licencia")
		}
	}
	logger.WithField("actor_id", actorID).Info("licencia eliminada")
	return nil
}

func (i impl) Get(actorID string, role models.UserRole, id string) (*licenseapimodels.LicenseView, error) {
	rec, err := i.getVisible(actorID, role, id)
	if err != nil {
		return nil, err
	}
	result := licenseapimodels.LicenseConvert(*rec)
	return &result, nil
}

func (i impl) ListByEmployee(actorID string, role models.UserRole, employeeID string) ([]licenseapimodels.LicenseView, error) {
	if employeeID == "" {
		employeeID = actorID
	}
	if employeeID != actorID && !role.CanViewOthers() {
		return nil, models.NewForbiddenError("no tiene permisos para ver licencias de otro empleado")
	}
	list, err := i.store.ListByEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) ListByDate(date time.Time) ([]licenseapimodels.LicenseView, error) {
	list, err := i.store.ListByDate(date)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) ExportByDate(date time.Time) (*bytes.Buffer, error) {
	list, err := i.store.ListByDate(date)
	if err != nil {
		return nil, err
	}
	return xlsexport.ExportLicenseRoster(date, list)
}

func (i impl) UploadDocument(ctx context.Context, actorID string, role models.UserRole, id string, file Document) error {
	if i.storage == nil {
		return errors.New("almacenamiento de documentos no configurado")
	}
	rec, err := i.getOwned(actorID, role, id)
	if err != nil {
		return err
	}
	key := filestorage.LicenseDocumentKey(id, file.FileName)
	if err = i.storage.UploadFile(ctx, key, file.Reader, file.Size, file.ContentType); err != nil {
		return errors.Wrap(err, "error al subir el documento")
	}
	if err = i.store.Update(id, map[string]interface{}{"document_key": key}); err != nil {
		return errors.Wrap(err, "error al guardar el documento de la licencia")
	}
	logger := i.getLogger(rec.EmployeeID, id)
	if rec.DocumentKey != "" && rec.DocumentKey != key {
		if err = i.storage.RemoveFile(ctx, rec.DocumentKey); err != nil {
			logger.WithError(err).Warn("no se pudo eliminar el documento anterior")
		}
	}
	logger.WithField("document_key", key).Info("documento de licencia cargado")
	return nil
}

func (i impl) GetDocument(ctx context.Context, actorID string, role models.UserRole, id string) ([]byte, string, error) {
	if i.storage == nil {
		return nil, "", errors.New("almacenamiento de documentos no configurado")
	}
	rec, err := i.getVisible(actorID, role, id)
	if err != nil {
		return nil, "", err
	}
	if rec.DocumentKey == "" {
		return nil, "", models.NewNotFoundError("la licencia no tiene documento")
	}
	body, err := i.storage.GetFile(ctx, rec.DocumentKey)
	if err != nil {
		return nil, "", errors.Wrap(err, "error al descargar el documento")
	}
	return body, filestorage.FileName(rec.DocumentKey), nil
}

func (i impl) checkEligible(employeeID string, dateFrom, dateTo time.Time) error {
	result, err := i.checker.Check(employeeID, dateFrom, dateTo)
	if err != nil {
		return err
	}
	if !result.Eligible {
		return models.NewConflictError(result.Reason)
	}
	return nil
}

func (i impl) checkOverlap(employeeID string, dateFrom, dateTo time.Time, excludeID string) error {
	overlaps, err := i.store.ExistsOverlapping(employeeID, dateFrom, dateTo, models.LicenseBlockingStatuses, excludeID)
	if err != nil {
		return errors.Wrap(err, "error al verificar licencias superpuestas")
	}
	if overlaps {
		return models.NewConflictError("ya existe una licencia en curso que se superpone con las fechas indicadas")
	}
	return nil
}

func (i impl) getVisible(actorID string, role models.UserRole, id string) (*dbmodels.License, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("licencia %s no encontrada", id)
	}
	if rec.EmployeeID != actorID && !role.CanViewOthers() {
		return nil, models.NewForbiddenError("no tiene permisos para ver esta licencia")
	}
	return rec, nil
}

func (i impl) getOwned(actorID string, role models.UserRole, id string) (*dbmodels.License, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("licencia %s no encontrada", id)
	}
	if rec.EmployeeID != actorID && !role.CanResolveAuthorizations() {
		return nil, models.NewForbiddenError("solo el titular puede modificar la licencia")
	}
	return rec, nil
}

func convertList(list []dbmodels.License) []licenseapimodels.LicenseView {
	result := make([]licenseapimodels.LicenseView, 0, len(list))
	for _, rec := range list {
		result = append(result, licenseapimodels.LicenseConvert(rec))
	}
	return result
}

// dropPendingAuthorization borra la autorizacion pendiente de la licencia junto con su historial
func dropPendingAuthorization(tx *gorm.DB, licenseID string) error {
	store := authorizationstore.NewInstance(tx)
	pending, err := store.FindPending(models.LicenseRef(licenseID))
	if err != nil {
		return errors.Wrap(err, "error al buscar la autorizacion de la licencia")
	}
	if pending == nil {
		return nil
	}
	deleted, err := store.DeletePending(pending.ID)
	if err != nil {
		return errors.Wrap(err, "error al eliminar la autorizacion de la licencia")
	}
	if !deleted {
		return models.NewConflictError("la autorizacion de la licencia ya fue resuelta")
	}
	if err = authorizationhistorystore.NewInstance(tx).DeleteByAuthorization(pending.ID); err != nil {
		return errors.Wrap(err, "error al eliminar el historial de la autorizacion")
	}
	return nil
}
