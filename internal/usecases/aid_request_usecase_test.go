package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"farm-bridge.backend/internal/domain/entities"
	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/internal/usecases"
	"farm-bridge.backend/pkg/metrics"
)

type aidRequestFixture struct {
	requestRepo *MockAidRequestRepository
	farmerRepo  *MockFarmerRepository
	donorRepo   *MockDonorRepository
	balanceRepo *MockBalanceRepository
	eventRepo   *MockLedgerEventRepository
	statsRepo   *MockStatsRepository
	uow         *MockUnitOfWork
	usecase     *usecases.AidRequestUsecase
}

func newAidRequestFixture() *aidRequestFixture {
	f := &aidRequestFixture{
		requestRepo: new(MockAidRequestRepository),
		farmerRepo:  new(MockFarmerRepository),
		donorRepo:   new(MockDonorRepository),
		balanceRepo: new(MockBalanceRepository),
		eventRepo:   new(MockLedgerEventRepository),
		statsRepo:   new(MockStatsRepository),
		uow:         new(MockUnitOfWork),
	}
	f.usecase = usecases.NewAidRequestUsecase(
		f.requestRepo, f.farmerRepo, f.donorRepo, f.balanceRepo,
		f.eventRepo, f.statsRepo, f.uow, metrics.New(),
	)
	return f
}

func openRequest(id uint64, requested, funded string) *entities.AidRequest {
	return &entities.AidRequest{
		ID:              id,
		FarmerAddress:   testFarmer,
		Name:            "Irrigation pump",
		Purpose:         "Replace broken pump",
		AmountRequested: requested,
		AmountFunded:    funded,
		Fulfilled:       false,
	}
}

func TestRequestAid_Success(t *testing.T) {
	f := newAidRequestFixture()

	f.farmerRepo.On("Exists", mock.Anything, testFarmer).Return(true, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.requestRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entities.AidRequest).ID = 0
		}).Return(nil)
	f.eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *entities.LedgerEvent) bool {
		return e.EventType == entities.LedgerEventAidRequested
	})).Return(nil)

	request, err := f.usecase.RequestAid(context.Background(), entities.CreateAidRequestInput{
		FarmerAddress: testFarmer,
		Name:          "Irrigation pump",
		Purpose:       "Replace broken pump",
		Amount:        "100000000000000000000",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), request.ID)
	assert.Equal(t, "100000000000000000000", request.AmountRequested)
	f.requestRepo.AssertExpectations(t)
	f.eventRepo.AssertExpectations(t)
}

func TestRequestAid_UnregisteredFarmerRejected(t *testing.T) {
	f := newAidRequestFixture()

	f.farmerRepo.On("Exists", mock.Anything, testFarmer).Return(false, nil)

	_, err := f.usecase.RequestAid(context.Background(), entities.CreateAidRequestInput{
		FarmerAddress: testFarmer,
		Name:          "Pump",
		Purpose:       "Pump",
		Amount:        "100",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeUnauthorized, appErr.Code)
	f.requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestAid_BadAmountsRejected(t *testing.T) {
	f := newAidRequestFixture()
	f.farmerRepo.On("Exists", mock.Anything, testFarmer).Return(true, nil)

	for _, amount := range []string{"0", "-5", "abc", ""} {
		_, err := f.usecase.RequestAid(context.Background(), entities.CreateAidRequestInput{
			FarmerAddress: testFarmer,
			Name:          "Pump",
			Purpose:       "Pump",
			Amount:        amount,
		})
		var appErr *domainerrors.AppError
		require.ErrorAs(t, err, &appErr, "amount %q", amount)
		assert.Equal(t, domainerrors.CodeInvalidAmount, appErr.Code, "amount %q", amount)
	}
}

// Partial contribution: 60 of 100 requested leaves the request open.
func TestFundAidRequest_PartialFunding(t *testing.T) {
	f := newAidRequestFixture()

	f.donorRepo.On("Exists", mock.Anything, testDonor).Return(true, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.requestRepo.On("GetByIDForUpdate", mock.Anything, uint64(0)).
		Return(openRequest(0, "100", "0"), nil)
	f.balanceRepo.On("Transfer", mock.Anything, testDonor, testFarmer, "60").Return(nil)
	f.requestRepo.On("ApplyFunding", mock.Anything, uint64(0), "60", false).Return(nil)
	f.donorRepo.On("GetByAddressForUpdate", mock.Anything, testDonor).
		Return(&entities.Donor{Address: testDonor, SuccessfulDisbursements: 0, ReputationScore: entities.InitialReputationScore}, nil)
	f.donorRepo.On("ApplyDisbursement", mock.Anything, testDonor, "60", 1, 41).Return(nil)
	f.farmerRepo.On("ApplyDisbursement", mock.Anything, testFarmer, "60").Return(nil)
	f.statsRepo.On("AddFundsDistributed", mock.Anything, "60").Return(nil)
	f.eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *entities.LedgerEvent) bool {
		return e.EventType == entities.LedgerEventAidFunded
	})).Return(nil)
	f.eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *entities.LedgerEvent) bool {
		return e.EventType == entities.LedgerEventReputationUpdated
	})).Return(nil)

	result, err := f.usecase.FundAidRequest(context.Background(), 0, entities.FundAidRequestInput{
		DonorAddress: testDonor,
		Amount:       "60",
	})
	require.NoError(t, err)
	assert.Equal(t, "60", result.AmountFunded)
	assert.False(t, result.Fulfilled)
	f.requestRepo.AssertExpectations(t)
	f.donorRepo.AssertExpectations(t)
	f.eventRepo.AssertExpectations(t)
}

// The contribution that reaches the target flips the request to fulfilled.
func TestFundAidRequest_ExactCompletion(t *testing.T) {
	f := newAidRequestFixture()

	f.donorRepo.On("Exists", mock.Anything, testDonor).Return(true, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.requestRepo.On("GetByIDForUpdate", mock.Anything, uint64(0)).
		Return(openRequest(0, "100", "60"), nil)
	f.balanceRepo.On("Transfer", mock.Anything, testDonor, testFarmer, "40").Return(nil)
	f.requestRepo.On("ApplyFunding", mock.Anything, uint64(0), "100", true).Return(nil)
	f.donorRepo.On("GetByAddressForUpdate", mock.Anything, testDonor).
		Return(&entities.Donor{Address: testDonor, SuccessfulDisbursements: 1, ReputationScore: 41}, nil)
	f.donorRepo.On("ApplyDisbursement", mock.Anything, testDonor, "40", 2, 53).Return(nil)
	f.farmerRepo.On("ApplyDisbursement", mock.Anything, testFarmer, "40").Return(nil)
	f.statsRepo.On("AddFundsDistributed", mock.Anything, "40").Return(nil)
	f.eventRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	result, err := f.usecase.FundAidRequest(context.Background(), 0, entities.FundAidRequestInput{
		DonorAddress: testDonor,
		Amount:       "40",
	})
	require.NoError(t, err)
	assert.Equal(t, "100", result.AmountFunded)
	assert.True(t, result.Fulfilled)
}

// Over-funding is accepted in full and never capped at the target.
func TestFundAidRequest_OverFundingAccepted(t *testing.T) {
	f := newAidRequestFixture()

	f.donorRepo.On("Exists", mock.Anything, testDonor).Return(true, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.requestRepo.On("GetByIDForUpdate", mock.Anything, uint64(3)).
		Return(openRequest(3, "100", "80"), nil)
	f.balanceRepo.On("Transfer", mock.Anything, testDonor, testFarmer, "30").Return(nil)
	f.requestRepo.On("ApplyFunding", mock.Anything, uint64(3), "110", true).Return(nil)
	f.donorRepo.On("GetByAddressForUpdate", mock.Anything, testDonor).
		Return(&entities.Donor{Address: testDonor, SuccessfulDisbursements: 2, ReputationScore: 53}, nil)
	f.donorRepo.On("ApplyDisbursement", mock.Anything, testDonor, "30", 3, 61).Return(nil)
	f.farmerRepo.On("ApplyDisbursement", mock.Anything, testFarmer, "30").Return(nil)
	f.statsRepo.On("AddFundsDistributed", mock.Anything, "30").Return(nil)
	f.eventRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	result, err := f.usecase.FundAidRequest(context.Background(), 3, entities.FundAidRequestInput{
		DonorAddress: testDonor,
		Amount:       "30",
	})
	require.NoError(t, err)
	assert.Equal(t, "110", result.AmountFunded)
	assert.True(t, result.Fulfilled)
}

// A fulfilled request rejects further contributions, including overshoot
// from concurrent donors who saw it open.
func TestFundAidRequest_AlreadyFulfilledRejected(t *testing.T) {
	f := newAidRequestFixture()

	f.donorRepo.On("Exists", mock.Anything, testDonor).Return(true, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	fulfilled := openRequest(0, "100", "110")
	fulfilled.Fulfilled = true
	f.requestRepo.On("GetByIDForUpdate", mock.Anything, uint64(0)).Return(fulfilled, nil)

	_, err := f.usecase.FundAidRequest(context.Background(), 0, entities.FundAidRequestInput{
		DonorAddress: testDonor,
		Amount:       "10",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeAlreadyFulfilled, appErr.Code)
	f.balanceRepo.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFundAidRequest_UnregisteredDonorRejected(t *testing.T) {
	f := newAidRequestFixture()

	f.donorRepo.On("Exists", mock.Anything, testDonor).Return(false, nil)

	_, err := f.usecase.FundAidRequest(context.Background(), 0, entities.FundAidRequestInput{
		DonorAddress: testDonor,
		Amount:       "10",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeUnauthorized, appErr.Code)
}

func TestFundAidRequest_ZeroAmountRejected(t *testing.T) {
	f := newAidRequestFixture()
	f.donorRepo.On("Exists", mock.Anything, testDonor).Return(true, nil)

	for _, amount := range []string{"0", "", "-1"} {
		_, err := f.usecase.FundAidRequest(context.Background(), 0, entities.FundAidRequestInput{
			DonorAddress: testDonor,
			Amount:       amount,
		})
		var appErr *domainerrors.AppError
		require.ErrorAs(t, err, &appErr, "amount %q", amount)
		assert.Equal(t, domainerrors.CodeZeroAmount, appErr.Code, "amount %q", amount)
	}
}

func TestFundAidRequest_UnknownIDRejected(t *testing.T) {
	f := newAidRequestFixture()

	f.donorRepo.On("Exists", mock.Anything, testDonor).Return(true, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.requestRepo.On("GetByIDForUpdate", mock.Anything, uint64(42)).
		Return(nil, domainerrors.ErrInvalidRequestID)

	_, err := f.usecase.FundAidRequest(context.Background(), 42, entities.FundAidRequestInput{
		DonorAddress: testDonor,
		Amount:       "10",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeInvalidRequestID, appErr.Code)
}

// A failed value transfer rejects the whole funding operation; none of the
// later mutations run.
func TestFundAidRequest_TransferFailureRollsBack(t *testing.T) {
	f := newAidRequestFixture()

	f.donorRepo.On("Exists", mock.Anything, testDonor).Return(true, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.requestRepo.On("GetByIDForUpdate", mock.Anything, uint64(0)).
		Return(openRequest(0, "100", "0"), nil)
	f.balanceRepo.On("Transfer", mock.Anything, testDonor, testFarmer, "60").
		Return(domainerrors.ErrTransferFailed)

	_, err := f.usecase.FundAidRequest(context.Background(), 0, entities.FundAidRequestInput{
		DonorAddress: testDonor,
		Amount:       "60",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeTransferFailed, appErr.Code)
	f.requestRepo.AssertNotCalled(t, "ApplyFunding", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.donorRepo.AssertNotCalled(t, "ApplyDisbursement", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.statsRepo.AssertNotCalled(t, "AddFundsDistributed", mock.Anything, mock.Anything)
}

// No reputation event is appended when the derived score did not change.
func TestFundAidRequest_NoReputationEventAtCeiling(t *testing.T) {
	f := newAidRequestFixture()

	f.donorRepo.On("Exists", mock.Anything, testDonor).Return(true, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.requestRepo.On("GetByIDForUpdate", mock.Anything, uint64(0)).
		Return(openRequest(0, "1000", "0"), nil)
	f.balanceRepo.On("Transfer", mock.Anything, testDonor, testFarmer, "10").Return(nil)
	f.requestRepo.On("ApplyFunding", mock.Anything, uint64(0), "10", false).Return(nil)
	f.donorRepo.On("GetByAddressForUpdate", mock.Anything, testDonor).
		Return(&entities.Donor{Address: testDonor, SuccessfulDisbursements: 20, ReputationScore: usecases.ReputationCeiling}, nil)
	f.donorRepo.On("ApplyDisbursement", mock.Anything, testDonor, "10", 21, usecases.ReputationCeiling).Return(nil)
	f.farmerRepo.On("ApplyDisbursement", mock.Anything, testFarmer, "10").Return(nil)
	f.statsRepo.On("AddFundsDistributed", mock.Anything, "10").Return(nil)
	f.eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *entities.LedgerEvent) bool {
		return e.EventType == entities.LedgerEventAidFunded
	})).Return(nil)

	_, err := f.usecase.FundAidRequest(context.Background(), 0, entities.FundAidRequestInput{
		DonorAddress: testDonor,
		Amount:       "10",
	})
	require.NoError(t, err)
	f.eventRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestGetAllAidRequests_CreationOrder(t *testing.T) {
	f := newAidRequestFixture()

	f.requestRepo.On("ListAll", mock.Anything).Return([]*entities.AidRequest{
		openRequest(0, "100", "0"),
		openRequest(1, "50", "0"),
	}, nil)

	requests, err := f.usecase.GetAllAidRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, uint64(0), requests[0].ID)
	assert.Equal(t, uint64(1), requests[1].ID)
}

func TestGetAidRequest_UnknownID(t *testing.T) {
	f := newAidRequestFixture()

	f.requestRepo.On("GetByID", mock.Anything, uint64(7)).
		Return(nil, domainerrors.ErrInvalidRequestID)

	_, err := f.usecase.GetAidRequest(context.Background(), 7)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeInvalidRequestID, appErr.Code)
}
