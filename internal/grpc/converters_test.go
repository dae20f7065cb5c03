package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/SuperMusic/internal/apperrors"
	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/services"
)

func TestConvertErrorToStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected codes.Code
	}{
		{"validation", apperrors.NewEmptyIdentifierError(), codes.InvalidArgument},
		{"wrapped validation", fmt.Errorf("resolve: %w", apperrors.NewEmptyKeywordError()), codes.InvalidArgument},
		{"access denied", &apperrors.UpstreamError{Kind: apperrors.KindAccessDenied, Code: 403}, codes.PermissionDenied},
		{"rate limited", &apperrors.UpstreamError{Kind: apperrors.KindRateLimited, Code: 429}, codes.ResourceExhausted},
		{"server error", &apperrors.UpstreamError{Kind: apperrors.KindServerError, Code: 500}, codes.Unavailable},
		{"other code", &apperrors.UpstreamError{Kind: apperrors.KindOtherCode, Code: 418}, codes.Unknown},
		{"api rejected", &apperrors.APIRejectedError{Body: "{}"}, codes.FailedPrecondition},
		{"transport", apperrors.NewTransportError("lookup", errors.New("refused")), codes.Unavailable},
		{"network", &apperrors.NetworkError{Err: errors.New("reset")}, codes.Unavailable},
		{"io", &apperrors.IOError{Op: "write to sink", Err: errors.New("disk full")}, codes.Internal},
		{"no results", services.ErrNoSearchResults, codes.NotFound},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"canceled", context.Canceled, codes.Canceled},
		{"unknown", errors.New("boom"), codes.Unknown},
		{"already a status", status.Error(codes.Aborted, "stop"), codes.Aborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(convertErrorToStatus(tt.err)); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	if convertErrorToStatus(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestConvertErrorToStatus_Details(t *testing.T) {
	t.Run("bad request carries field and kind", func(t *testing.T) {
		err := convertErrorToStatus(apperrors.NewUnsupportedQualityError("999k", []string{"128k"}))
		st, _ := status.FromError(err)
		if len(st.Details()) != 1 {
			t.Fatalf("Expected one detail, got %d", len(st.Details()))
		}
		br, ok := st.Details()[0].(*errdetails.BadRequest)
		if !ok {
			t.Fatalf("Expected BadRequest detail, got %T", st.Details()[0])
		}
		violation := br.GetFieldViolations()[0]
		if violation.GetField() != "quality" || violation.GetReason() != "UNSUPPORTED_QUALITY" {
			t.Errorf("Unexpected violation %+v", violation)
		}
	})

	t.Run("error info carries upstream code", func(t *testing.T) {
		err := convertErrorToStatus(&apperrors.UpstreamError{Kind: apperrors.KindOtherCode, Code: 418, Message: "upstream API error: 418"})
		st, _ := status.FromError(err)
		info, ok := st.Details()[0].(*errdetails.ErrorInfo)
		if !ok {
			t.Fatalf("Expected ErrorInfo detail, got %T", st.Details()[0])
		}
		if info.GetDomain() != errorDomain || info.GetMetadata()["code"] != "418" || info.GetReason() != "OTHER" {
			t.Errorf("Unexpected ErrorInfo %+v", info)
		}
	})

	t.Run("rejection carries probed message", func(t *testing.T) {
		err := convertErrorToStatus(&apperrors.APIRejectedError{Body: `{"code":403,"msg":"x"}`, Code: 403, Message: "x"})
		st, _ := status.FromError(err)
		info := st.Details()[0].(*errdetails.ErrorInfo)
		if info.GetMetadata()["message"] != "x" || info.GetMetadata()["code"] != "403" {
			t.Errorf("Unexpected metadata %v", info.GetMetadata())
		}
	})
}

func TestConvertDownloadRequestFromMessage(t *testing.T) {
	req, metadata := convertDownloadRequestFromMessage(&DownloadRequest{Platform: "tx", ExternalID: " mid ", Quality: "hires", Artist: "A"})
	if req.Platform != models.PlatformQQ || req.ExternalID != " mid " || req.Quality != models.QualityHiRes {
		t.Errorf("Unexpected request %+v", req)
	}
	if metadata == nil || metadata.Artist != "A" || metadata.ExternalID != " mid " {
		t.Errorf("Unexpected metadata %+v", metadata)
	}

	if _, metadata := convertDownloadRequestFromMessage(&DownloadRequest{Platform: "tx", ExternalID: "1", Quality: "128k"}); metadata != nil {
		t.Errorf("Expected nil metadata, got %+v", metadata)
	}
}

func TestConvertProgressToMessage(t *testing.T) {
	event := convertProgressToMessage("id", models.TransferProgress{BytesTransferred: 5})
	if event.Percent != -1 || event.TotalBytes != 0 || event.TransferID != "id" {
		t.Errorf("Unexpected event %+v", event)
	}
}

func TestJSONCodec(t *testing.T) {
	codec := jsonCodec{}
	data, err := codec.Marshal(&Track{Title: "t", Platform: "wy", ExternalID: "1"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var track Track
	if err := codec.Unmarshal(data, &track); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if track.Title != "t" || track.ExternalID != "1" {
		t.Errorf("Unexpected track %+v", track)
	}

	info := &errdetails.ErrorInfo{Reason: "R"}
	data, err = codec.Marshal(info)
	if err != nil {
		t.Fatalf("Marshal proto failed: %v", err)
	}
	decoded := &errdetails.ErrorInfo{}
	if err := codec.Unmarshal(data, decoded); err != nil || decoded.GetReason() != "R" {
		t.Errorf("Expected protojson round trip, got %v %v", decoded, err)
	}
}
