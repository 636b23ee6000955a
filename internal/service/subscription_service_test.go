package service

import (
	"context"
	"testing"

	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPlan(t *testing.T) {
	tests := []struct {
		name       string
		age        model.AgeGroup
		sub        model.SubscriptionType
		wantAmount float64
		wantErr    error
	}{
		{"foundation monthly", model.AgeFoundation, model.SubscriptionMonthly, 1200, nil},
		{"foundation quarterly uses total", model.AgeFoundation, model.SubscriptionQuarterly, 4560, nil},
		{"development monthly", model.AgeDevelopment, model.SubscriptionMonthly, 1800, nil},
		{"mastery quarterly", model.AgeMastery, model.SubscriptionQuarterly, 8640, nil},
		{"annual not offered", model.AgeMastery, model.SubscriptionAnnual, 0, util.ErrInvalidPlan},
		{"unknown age group", model.AgeGroup("17-20"), model.SubscriptionMonthly, 0, util.ErrInvalidPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := LookupPlan(tt.age, tt.sub)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, plan.Amount())
			assert.Equal(t, "lkr", plan.Currency)
		})
	}
}

func TestSubscriptionService_Checkout(t *testing.T) {
	ctx := context.Background()
	st := newTestStores(t)
	user := &model.User{Email: "parent@example.com", FullName: "Parent", Role: model.Student, AgeGroup: model.AgeFoundation}
	require.NoError(t, st.Users().Create(ctx, user))
	caller := Caller{UserID: user.ID, Role: model.Student}

	gateway := &stubGateway{session: &CheckoutSession{SessionID: "cs_sub", URL: "https://pay.example.com/cs_sub"}}
	svc := NewSubscriptionService(st.Users(), st.Payments(), gateway, NewActivityService(st.Activities()))

	res, err := svc.Checkout(ctx, caller, SubscriptionCheckoutRequest{
		SubscriptionType: model.SubscriptionQuarterly,
		AgeGroup:         model.AgeFoundation,
		SuccessURL:       "https://tec.lk/ok",
		CancelURL:        "https://tec.lk/cancel",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_sub", res.SessionID)

	require.Len(t, gateway.requests, 1)
	assert.Equal(t, 4560.0, gateway.requests[0].Amount)
	assert.Equal(t, user.ID, gateway.requests[0].Metadata["user_id"])
	assert.Equal(t, "Foundation Level - Quarterly", gateway.requests[0].Metadata["plan_name"])

	tx, err := st.Payments().FindBySession(ctx, "cs_sub")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentInitiated, tx.Status)
	assert.Equal(t, 4560.0, tx.Amount)
	assert.Equal(t, user.ID, tx.UserID)

	activities, err := st.Activities().ListRecentByUser(ctx, user.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, activities)
	assert.Equal(t, model.ActivityPaymentInitiated, activities[0].ActivityType)

	t.Run("invalid plan", func(t *testing.T) {
		_, err := svc.Checkout(ctx, caller, SubscriptionCheckoutRequest{
			SubscriptionType: model.SubscriptionAnnual, AgeGroup: model.AgeFoundation,
			SuccessURL: "https://tec.lk/ok", CancelURL: "https://tec.lk/cancel",
		})
		assert.ErrorIs(t, err, util.ErrInvalidPlan)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Checkout(ctx, Caller{UserID: "ghost", Role: model.Student}, SubscriptionCheckoutRequest{
			SubscriptionType: model.SubscriptionMonthly, AgeGroup: model.AgeFoundation,
			SuccessURL: "https://tec.lk/ok", CancelURL: "https://tec.lk/cancel",
		})
		assert.ErrorIs(t, err, util.ErrUserNotFound)
	})

	t.Run("no gateway", func(t *testing.T) {
		bare := NewSubscriptionService(st.Users(), st.Payments(), nil, NewActivityService(st.Activities()))
		_, err := bare.Checkout(ctx, caller, SubscriptionCheckoutRequest{
			SubscriptionType: model.SubscriptionMonthly, AgeGroup: model.AgeFoundation,
		})
		assert.ErrorIs(t, err, util.ErrPaymentNotConfigured)
	})
}
