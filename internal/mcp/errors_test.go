package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/jackc/pgx/v5/pgconn"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestBuildErrorEnvelopeTimeout(t *testing.T) {
	envelope := BuildErrorEnvelope(context.DeadlineExceeded, nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "timeout" {
		t.Fatalf("expected timeout code, got %s", detail.Code)
	}
	if !detail.Retryable {
		t.Fatalf("expected retryable timeout")
	}
}

func TestBuildErrorEnvelopeCanceled(t *testing.T) {
	envelope := BuildErrorEnvelope(context.Canceled, nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "canceled" {
		t.Fatalf("expected canceled code, got %s", detail.Code)
	}
}

func TestBuildErrorEnvelopeForbidden(t *testing.T) {
	err := apierrors.NewForbidden(schema.GroupResource{Resource: "pods"}, "demo", nil)
	envelope := BuildErrorEnvelope(err, nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "forbidden" {
		t.Fatalf("expected forbidden code, got %s", detail.Code)
	}
	if detail.Retryable {
		t.Fatalf("expected forbidden to be non-retryable")
	}
}

func TestBuildErrorEnvelopeNotFound(t *testing.T) {
	err := apierrors.NewNotFound(schema.GroupResource{Resource: "pods"}, "demo")
	envelope := BuildErrorEnvelope(err, nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "not_found" {
		t.Fatalf("expected not_found code, got %s", detail.Code)
	}
}

func TestBuildErrorEnvelopeConflict(t *testing.T) {
	err := apierrors.NewConflict(schema.GroupResource{Resource: "pods"}, "demo", errors.New("conflict"))
	envelope := BuildErrorEnvelope(err, nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "conflict" {
		t.Fatalf("expected conflict code, got %s", detail.Code)
	}
	if !detail.Retryable {
		t.Fatalf("expected conflict to be retryable")
	}
}

func TestBuildErrorEnvelopeAWSAccessDenied(t *testing.T) {
	err := &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}
	envelope := BuildErrorEnvelope(err, nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "forbidden" {
		t.Fatalf("expected forbidden code, got %s", detail.Code)
	}
}

func TestBuildErrorEnvelopeAWSRateLimited(t *testing.T) {
	err := &smithy.GenericAPIError{Code: "ThrottlingException", Message: "slow down"}
	envelope := BuildErrorEnvelope(err, nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "rate_limited" {
		t.Fatalf("expected rate_limited code, got %s", detail.Code)
	}
	if !detail.Retryable {
		t.Fatalf("expected rate_limited to be retryable")
	}
}

func TestBuildErrorEnvelopeAWSInvalidRequest(t *testing.T) {
	err := &smithy.GenericAPIError{Code: "ValidationException", Message: "bad input"}
	envelope := BuildErrorEnvelope(err, map[string]any{"field": "name"})
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "invalid_request" {
		t.Fatalf("expected invalid_request code, got %s", detail.Code)
	}
	if _, ok := envelope["details"]; !ok {
		t.Fatalf("expected details to be included")
	}
}

func TestBuildErrorEnvelopeAWSUpstreamDefault(t *testing.T) {
	err := &smithy.GenericAPIError{Code: "Unknown", Message: "boom"}
	envelope := BuildErrorEnvelope(err, nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "upstream_error" {
		t.Fatalf("expected upstream_error code, got %s", detail.Code)
	}
}

func TestBuildErrorEnvelopePostgresAuth(t *testing.T) {
	err := &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}
	envelope := BuildErrorEnvelope(err, nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "unauthorized" {
		t.Fatalf("expected unauthorized code, got %s", detail.Code)
	}
}

func TestBuildErrorEnvelopePostgresSyntax(t *testing.T) {
	err := &pgconn.PgError{Code: "42601", Message: "syntax error"}
	envelope := BuildErrorEnvelope(err, nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "invalid_request" {
		t.Fatalf("expected invalid_request code, got %s", detail.Code)
	}
}

func TestBuildErrorEnvelopeInvalidRequestMessage(t *testing.T) {
	envelope := BuildErrorEnvelope(errors.New("missing field"), nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "invalid_request" {
		t.Fatalf("expected invalid_request code, got %s", detail.Code)
	}
}

func TestBuildErrorEnvelopeInternalFallback(t *testing.T) {
	envelope := BuildErrorEnvelope(errors.New("boom"), nil)
	detail := envelope["error"].(ErrorDetail)
	if detail.Code != "internal" {
		t.Fatalf("expected internal code, got %s", detail.Code)
	}
}
