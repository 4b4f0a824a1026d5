package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mechanic-system/internal/dto"
	apperrors "mechanic-system/pkg/errors"
	"mechanic-system/pkg/utils"
)

func newCustomerTestService() (*fakeCustomerRepo, CustomerServiceInterface) {
	customerRepo := newFakeCustomerRepo()
	ticketRepo := newFakeTicketRepo()
	svc := NewCustomerService(customerRepo, ticketRepo, &fakeTxManager{}, zap.NewNop())
	return customerRepo, svc
}

func TestCustomerService_CreateHashesPassword(t *testing.T) {
	repo, svc := newCustomerTestService()

	created, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerDTO{
		Name:     "Ada",
		Email:    "ada@example.com",
		Phone:    "555-0100",
		Password: "plaintext",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID)

	stored := repo.customers[created.ID]
	assert.NotEqual(t, "plaintext", stored.Password)
	assert.NoError(t, utils.ComparePasswords(stored.Password, "plaintext"))
}

func TestCustomerService_CreateDuplicateEmail(t *testing.T) {
	_, svc := newCustomerTestService()

	payload := dto.CreateCustomerDTO{Name: "Ada", Email: "ada@example.com", Password: "pw"}
	_, err := svc.CreateCustomer(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.CreateCustomer(context.Background(), payload)
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	assert.Equal(t, "Email already associated with an account.", httpErr.Message)
}

func TestCustomerService_Login(t *testing.T) {
	_, svc := newCustomerTestService()

	_, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerDTO{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	customer, err := svc.Login(context.Background(), dto.LoginDTO{
		Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", customer.Email)

	_, err = svc.Login(context.Background(), dto.LoginDTO{
		Email: "ada@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginDTO{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestCustomerService_PartialUpdate(t *testing.T) {
	repo, svc := newCustomerTestService()

	created, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerDTO{
		Name: "Ada", Email: "ada@example.com", Phone: "555-0100", Password: "pw",
	})
	require.NoError(t, err)

	newPhone := "555-0199"
	updated, err := svc.UpdateCustomer(context.Background(), created.ID, dto.UpdateCustomerDTO{Phone: &newPhone})
	require.NoError(t, err)

	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, "ada@example.com", updated.Email)

	// Password update is re-hashed.
	newPassword := "rotated"
	_, err = svc.UpdateCustomer(context.Background(), created.ID, dto.UpdateCustomerDTO{Password: &newPassword})
	require.NoError(t, err)
	assert.NoError(t, utils.ComparePasswords(repo.customers[created.ID].Password, "rotated"))
}

func TestCustomerService_NotFound(t *testing.T) {
	_, svc := newCustomerTestService()

	_, err := svc.FindCustomer(context.Background(), 404)
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
	assert.Equal(t, "Customer not found.", httpErr.Message)

	err = svc.DeleteCustomer(context.Background(), 404)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Customer not found.", httpErr.Message)
}

func TestCustomerService_ListPagination(t *testing.T) {
	_, svc := newCustomerTestService()

	for i := 0; i < 11; i++ {
		_, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerDTO{
			Name:     "Customer",
			Email:    "customer" + string(rune('a'+i)) + "@example.com",
			Password: "pw",
		})
		require.NoError(t, err)
	}

	page1, err := svc.GetCustomers(context.Background(), utils.PageParams{Requested: true, Limit: 10, Offset: 0})
	require.NoError(t, err)
	assert.Len(t, page1, 10)

	page2, err := svc.GetCustomers(context.Background(), utils.PageParams{Requested: true, Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Len(t, page2, 1)

	all, err := svc.GetCustomers(context.Background(), utils.PageParams{})
	require.NoError(t, err)
	assert.Len(t, all, 11)
}
