package common

// Upstream API functions.
const (
	FunctionTimeSeriesIntraday = "TIME_SERIES_INTRADAY"
	FunctionTopGainersLosers   = "TOP_GAINERS_LOSERS"
	FunctionNewsSentiment      = "NEWS_SENTIMENT"
)

// Output file names inside the data directory.
const (
	StockSeriesFileFormat     = "stock_data_%s_%s.csv"
	TopGainersFileName        = "top_gainers.csv"
	TopLosersFileName         = "top_losers.csv"
	MostActiveFileName        = "most_actively_traded.csv"
	NewsSentimentFileFormat   = "news_sentiment_%s.json"
	SentimentReportFileFormat = "news_sentiment_%s.pdf"
)

const (
	RedisStreamMarketDataSaved = "market.data.saved"
	RedisKeyFileLock           = "market_file_lock:%s"
)

// PopularSymbols are offered as defaults by the dashboard.
var PopularSymbols = []string{"IBM", "AAPL", "GOOGL", "MSFT", "TSLA", "AMZN", "NFLX", "META", "NVDA", "ORCL"}
