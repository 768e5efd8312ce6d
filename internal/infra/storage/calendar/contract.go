package calendar

import "github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
