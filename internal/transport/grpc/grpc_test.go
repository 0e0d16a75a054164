package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/nadzzz/coachd/internal/message"
)

type fakeHandler struct {
	err error
}

func (f *fakeHandler) Analyze(_ context.Context, req *message.AnalyzeRequest) (*message.AnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &message.AnalysisResult{Score: 77, Feedback: "ok " + req.Role, Keywords: []string{"go"}, Mode: message.ModeLocal}, nil
}

func (f *fakeHandler) Translate(_ context.Context, req *message.TranslateRequest) (*message.TranslateResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &message.TranslateResult{TranslatedText: "hola", TargetLanguage: req.TargetLanguage}, nil
}

func (f *fakeHandler) Questions(_ context.Context, req *message.QuestionsRequest) (*message.QuestionsResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &message.QuestionsResult{
		Questions: []message.Question{{ID: 1, Text: "Why " + req.Role + "?", Difficulty: req.Level}},
		Language:  "en",
		Mode:      message.ModeLocal,
	}, nil
}

func (f *fakeHandler) FollowUp(_ context.Context, req *message.FollowUpRequest) (*message.FollowUpResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &message.FollowUpResult{FollowUp: "And then?", Language: "en", Difficulty: message.LevelMid}, nil
}

func (f *fakeHandler) Summarize(_ context.Context, req *message.InterviewRequest) (*message.InterviewSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &message.InterviewSummary{
		OverallScore: 80,
		Statistics:   message.InterviewStatistics{TotalQuestions: len(req.Answers)},
		Mode:         message.ModeLocal,
	}, nil
}

func (f *fakeHandler) Detect(_ context.Context, req *message.DetectRequest) (*message.DetectResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &message.DetectResult{Language: "bn", Name: "Bengali"}, nil
}

func (f *fakeHandler) Languages(query string) *message.LanguagesResult {
	return &message.LanguagesResult{Groups: []message.LanguageGroup{{Category: "popular" + query}}}
}

func dial(t *testing.T, h *fakeHandler) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv, _ := NewServer(h)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func invoke(ctx context.Context, conn *grpc.ClientConn, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append(opts, grpc.CallContentSubtype(CodecName))
	return conn.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func TestUnaryMethods(t *testing.T) {
	ctx := context.Background()
	conn := dial(t, &fakeHandler{})

	var res message.AnalysisResult
	require.NoError(t, invoke(ctx, conn, "Analyze", &message.AnalyzeRequest{Role: "SRE"}, &res))
	require.Equal(t, 77, res.Score)
	require.Equal(t, "ok SRE", res.Feedback)
	require.Equal(t, []string{"go"}, res.Keywords)

	var tr message.TranslateResult
	require.NoError(t, invoke(ctx, conn, "Translate", &message.TranslateRequest{Text: "hi", TargetLanguage: "es"}, &tr))
	require.Equal(t, "hola", tr.TranslatedText)

	var langs message.LanguagesResult
	require.NoError(t, invoke(ctx, conn, "Languages", &LanguagesRequest{Query: "-x"}, &langs))
	require.Equal(t, "popular-x", langs.Groups[0].Category)

	var det message.DetectResult
	require.NoError(t, invoke(ctx, conn, "Detect", &message.DetectRequest{Text: "নমস্কার"}, &det))
	require.Equal(t, message.DetectResult{Language: "bn", Name: "Bengali"}, det)
}

func TestInterviewMethods(t *testing.T) {
	ctx := context.Background()
	conn := dial(t, &fakeHandler{})

	t.Run("questions", func(t *testing.T) {
		var res message.QuestionsResult
		require.NoError(t, invoke(ctx, conn, "Questions", &message.QuestionsRequest{Role: "SRE", Level: message.LevelSenior}, &res))
		require.Equal(t, "Why SRE?", res.Questions[0].Text)
		require.Equal(t, message.LevelSenior, res.Questions[0].Difficulty)
	})

	t.Run("follow-up", func(t *testing.T) {
		var res message.FollowUpResult
		require.NoError(t, invoke(ctx, conn, "FollowUp", &message.FollowUpRequest{Answer: "I shipped it."}, &res))
		require.Equal(t, "And then?", res.FollowUp)
	})

	t.Run("summary", func(t *testing.T) {
		var res message.InterviewSummary
		req := &message.InterviewRequest{Answers: []message.InterviewAnswer{{Answer: "a"}, {Answer: "b"}}}
		require.NoError(t, invoke(ctx, conn, "SummarizeInterview", req, &res))
		require.Equal(t, 80, res.OverallScore)
		require.Equal(t, 2, res.Statistics.TotalQuestions)
	})

	t.Run("failure kind", func(t *testing.T) {
		conn := dial(t, &fakeHandler{err: message.Validation("at least one answer is required")})
		var (
			res     message.InterviewSummary
			trailer metadata.MD
		)
		err := invoke(ctx, conn, "SummarizeInterview", &message.InterviewRequest{}, &res, grpc.Trailer(&trailer))
		require.Equal(t, codes.InvalidArgument, status.Code(err))
		require.Equal(t, []string{string(message.FailureValidation)}, trailer.Get(FailureKindKey))
	})
}

func TestFailureMapping(t *testing.T) {
	cases := []struct {
		kind message.FailureKind
		code codes.Code
	}{
		{message.FailureValidation, codes.InvalidArgument},
		{message.FailureServiceUnreachable, codes.Unavailable},
		{message.FailureMalformedResponse, codes.Unavailable},
		{message.FailureInternal, codes.Internal},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			conn := dial(t, &fakeHandler{err: &message.Failure{Kind: tc.kind, Message: "nope"}})

			var (
				res     message.AnalysisResult
				trailer metadata.MD
			)
			err := invoke(context.Background(), conn, "Analyze", &message.AnalyzeRequest{}, &res, grpc.Trailer(&trailer))
			st, ok := status.FromError(err)
			require.True(t, ok)
			require.Equal(t, tc.code, st.Code())
			require.Equal(t, "nope", st.Message())
			require.Equal(t, []string{string(tc.kind)}, trailer.Get(FailureKindKey))
		})
	}
}

func TestHealth(t *testing.T) {
	conn := dial(t, &fakeHandler{})
	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestListenClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := New(0)
	errc := make(chan error, 1)
	go func() { errc <- tr.Listen(ctx, &fakeHandler{}) }()
	require.NoError(t, tr.Close())

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Listen did not return after Close")
	}
	require.NoError(t, tr.Close())
}
