package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	api.GET("/songs/:userId", s.listSongs)
	api.GET("/shorts/:userId", s.listShorts)
	api.GET("/stories/user/:userId", s.listStories)
	api.GET("/followers/:userId", s.listFollowers)

	playlists := api.Group("/playlists")
	playlists.GET("/user/:userId", s.listPlaylists)
	playlists.GET("/:playlistId", s.getPlaylist)

	api.GET("/chats/user/:userId", s.listChats)
	api.GET("/messages/chat/:chatId", s.listMessages)

	likes := api.Group("/song-likes")
	likes.GET("/song/:songId/user/:userId", s.getLikeStatus)
	likes.POST("/like", s.likeSong)
	likes.POST("/dislike", s.dislikeSong)

	api.GET("/users/:userId", s.getUser)
	api.POST("/auth/authenticate", s.authenticate)

	cache := api.Group("/cache", s.middleware.Admin.RequireAdminToken())
	cache.GET("", s.cacheStats)
	cache.DELETE("", s.purgeCaches)
}
