package payment_gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/requests"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/responses"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const requestPaymentPath = "/api/v1/request-payment"

type momoService struct {
	BaseUrl  string
	Username string
	ApiKey   string
	Client   *http.Client
	Limiter  *rate.Limiter
	Log      *zap.Logger
}

// NewMomoService builds the mobile-money gateway client. The limiter keeps us
// inside the partner's 10 req/s charge-initiation quota.
func NewMomoService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	return &momoService{
		BaseUrl:  internalConfig.PaymentGateway.BaseUrl,
		Username: internalConfig.PaymentGateway.Username,
		ApiKey:   internalConfig.PaymentGateway.ApiKey,
		Client:   &http.Client{Timeout: 15 * time.Second},
		Limiter:  rate.NewLimiter(rate.Limit(10), 10),
		Log:      logger,
	}
}

func (s *momoService) InitiateCharge(ctx context.Context, request *requests.GatewayCharge) (*responses.GatewayCharge, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("momoService.InitiateCharge called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIntentIDKey, request.PartnerTrxID),
	)

	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrPaymentGatewayRequest(err)
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseUrl+requestPaymentPath, bytes.NewReader(body))
	if err != nil {
		return nil, exceptions.ErrPaymentGatewayRequest(err)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	httpRequest.SetBasicAuth(s.Username, s.ApiKey)

	httpResponse, err := s.Client.Do(httpRequest)
	if err != nil {
		s.Log.Error("momoService.InitiateCharge error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPaymentGatewayRequest(err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		err := fmt.Errorf("gateway responded with status %d", httpResponse.StatusCode)
		s.Log.Error("momoService.InitiateCharge unexpected gateway status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, httpResponse.StatusCode),
		)
		return nil, exceptions.ErrPaymentGatewayBadStatus(err)
	}

	response := new(responses.GatewayCharge)
	if err := json.NewDecoder(httpResponse.Body).Decode(response); err != nil {
		return nil, exceptions.ErrPaymentGatewayBadStatus(err)
	}

	s.Log.Info("momoService.InitiateCharge succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingExternalRefKey, response.TrxRef),
	)
	return response, nil
}
