// Package metrics содержит счётчики Prometheus для наблюдения за сервисом.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ResumesUploaded — количество успешно сохранённых резюме.
	ResumesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_analyzer_resumes_uploaded_total",
		Help: "Total number of resume records persisted.",
	})

	// AnalysisFailures — количество неуспешных вызовов сервиса анализа.
	// Вызовы best-effort: неудача не прерывает загрузку.
	AnalysisFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_analyzer_analysis_failures_total",
		Help: "Total number of failed calls to the analysis service.",
	})

	// AnalysisCacheHits — количество результатов анализа, взятых из кэша.
	AnalysisCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_analyzer_analysis_cache_hits_total",
		Help: "Total number of analysis results served from cache.",
	})

	// AuthRejections — количество запросов, отклонённых аутентификацией,
	// с меткой причины (no_token, invalid_token, user_not_found).
	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_analyzer_auth_rejections_total",
		Help: "Total number of requests rejected by the auth middleware.",
	}, []string{"reason"})
)
