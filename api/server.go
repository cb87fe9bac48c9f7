package api

import (
	"context"
	"fmt"
	"github.com/ITCS-6112-Dilio/dilio/api/transport"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"os"
)

const (
	RoleAPI       = "api"
	RoleClosePool = "close-pool"
	RoleBroadcast = "broadcast"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	ctx := context.Background()
	logging.SetLevel(s.config.LogLevel)

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}

	app, err := NewApp(ctx, s.config, cfg)
	if err != nil {
		logging.Log.Errorf("failed to build the application: %v", err)
		panic("failed to build the application: " + err.Error())
	}

	switch s.config.Role {
	case RoleClosePool:
		logging.Log.Info("Starting close pool lambda")
		lambda.Start(app.ClosePool.Handle)
	case RoleBroadcast:
		logging.Log.Info("Starting voting broadcast lambda")
		lambda.Start(app.Broadcast.Handle)
	case RoleAPI:
		r := transport.NewRouter(gin.DebugMode)
		app.RegisterRoutes(r)

		//Do not run lambda helper locally
		if os.Getenv("APP_ENV") == "local" {
			startLocal(r, s.config.Port)
		} else {
			startLambda(r)
		}
	default:
		logging.Log.Fatalf("unknown APP_ROLE %q", s.config.Role)
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
