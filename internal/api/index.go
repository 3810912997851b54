package api

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// indexHTML is the upload page: drag-and-drop upload, theme and title
// options, conversion stats, and an iframe preview of the rendered graph.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>ToGraph - Interactive Knowledge Graph Generator</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            padding: 20px;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
        }

        .header {
            text-align: center;
            color: white;
            margin-bottom: 40px;
        }

        .header h1 {
            font-size: 3em;
            margin-bottom: 10px;
            text-shadow: 2px 2px 4px rgba(0,0,0,0.3);
        }

        .header p {
            font-size: 1.2em;
            opacity: 0.9;
        }

        .upload-section {
            background: white;
            border-radius: 15px;
            padding: 40px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.2);
            margin-bottom: 30px;
        }

        .upload-area {
            border: 3px dashed #667eea;
            border-radius: 10px;
            padding: 60px 20px;
            text-align: center;
            cursor: pointer;
            transition: all 0.3s ease;
            background: #f8f9fa;
        }

        .upload-area:hover {
            border-color: #764ba2;
            background: #f0f1f5;
        }

        .upload-area.dragover {
            border-color: #764ba2;
            background: #e8e9f0;
        }

        .upload-icon {
            font-size: 4em;
            margin-bottom: 20px;
        }

        .upload-text {
            font-size: 1.2em;
            color: #333;
            margin-bottom: 10px;
        }

        .upload-hint {
            color: #666;
            font-size: 0.9em;
        }

        .file-input {
            display: none;
        }

        .options {
            margin-top: 30px;
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
        }

        .option-group {
            display: flex;
            flex-direction: column;
        }

        .option-group label {
            font-weight: 600;
            margin-bottom: 8px;
            color: #333;
        }

        .option-group select,
        .option-group input[type="text"] {
            padding: 10px;
            border: 2px solid #ddd;
            border-radius: 5px;
            font-size: 1em;
            transition: border-color 0.3s ease;
        }

        .option-group select:focus,
        .option-group input[type="text"]:focus {
            outline: none;
            border-color: #667eea;
        }

        .option-group .checkbox-row {
            display: flex;
            align-items: center;
            gap: 8px;
            padding: 10px 0;
        }

        .button {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            border: none;
            padding: 15px 40px;
            font-size: 1.1em;
            border-radius: 25px;
            cursor: pointer;
            transition: transform 0.2s ease, box-shadow 0.2s ease;
            margin-top: 20px;
            width: 100%;
            font-weight: 600;
        }

        .button:hover {
            transform: translateY(-2px);
            box-shadow: 0 5px 15px rgba(102, 126, 234, 0.4);
        }

        .button:disabled {
            opacity: 0.6;
            cursor: not-allowed;
            transform: none;
        }

        .result-section {
            background: white;
            border-radius: 15px;
            padding: 20px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.2);
            display: none;
        }

        .result-section.visible {
            display: block;
        }

        .result-header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            margin-bottom: 20px;
            padding-bottom: 15px;
            border-bottom: 2px solid #eee;
        }

        .result-title {
            font-size: 1.5em;
            color: #333;
        }

        .download-btn {
            background: #28a745;
            color: white;
            border: none;
            padding: 10px 20px;
            border-radius: 5px;
            cursor: pointer;
            font-size: 1em;
            transition: background 0.3s ease;
        }

        .download-btn:hover {
            background: #218838;
        }

        .graph-container {
            width: 100%;
            height: 700px;
            border: 1px solid #ddd;
            border-radius: 10px;
            overflow: hidden;
        }

        .loading {
            text-align: center;
            padding: 40px;
            color: #667eea;
            font-size: 1.2em;
        }

        .spinner {
            border: 4px solid #f3f3f3;
            border-top: 4px solid #667eea;
            border-radius: 50%;
            width: 40px;
            height: 40px;
            animation: spin 1s linear infinite;
            margin: 20px auto;
        }

        @keyframes spin {
            0% { transform: rotate(0deg); }
            100% { transform: rotate(360deg); }
        }

        .error-message {
            background: #f8d7da;
            color: #721c24;
            border: 1px solid #f5c6cb;
            border-radius: 5px;
            padding: 15px;
            margin-top: 20px;
            display: none;
        }

        .error-message.visible {
            display: block;
        }

        .stats {
            display: flex;
            justify-content: space-around;
            margin-bottom: 20px;
            padding: 15px;
            background: #f8f9fa;
            border-radius: 8px;
        }

        .stat-item {
            text-align: center;
        }

        .stat-value {
            font-size: 2em;
            font-weight: bold;
            color: #667eea;
        }

        .stat-label {
            color: #666;
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>ToGraph</h1>
            <p>Transform documents into interactive knowledge graphs</p>
        </div>

        <div class="upload-section">
            <form id="uploadForm" enctype="multipart/form-data">
                <div class="upload-area" id="uploadArea">
                    <div class="upload-icon">&#128196;</div>
                    <div class="upload-text">Click to upload or drag and drop</div>
                    <div class="upload-hint">PDF, Markdown, text, HTML or DOCX files (max 16MB)</div>
                    <input type="file" id="fileInput" name="file" class="file-input" accept=".pdf,.md,.markdown,.txt,.html,.htm,.docx">
                </div>

                <div class="options">
                    <div class="option-group">
                        <label for="theme">Theme:</label>
                        <select id="theme" name="theme">
                            <option value="light">Light</option>
                            <option value="dark">Dark</option>
                        </select>
                    </div>

                    <div class="option-group">
                        <label for="title">Graph Title:</label>
                        <input type="text" id="title" name="title" value="Knowledge Graph" placeholder="Enter graph title">
                    </div>

                    <div class="option-group">
                        <label for="keepRedundant">Sections:</label>
                        <div class="checkbox-row">
                            <input type="checkbox" id="keepRedundant" name="keep_redundant" value="true">
                            <label for="keepRedundant">Keep boilerplate (references, appendix, ...)</label>
                        </div>
                    </div>
                </div>

                <button type="submit" class="button" id="generateBtn">Generate Knowledge Graph</button>
            </form>

            <div class="error-message" id="errorMessage"></div>
        </div>

        <div class="result-section" id="resultSection">
            <div class="result-header">
                <div class="result-title">Your Knowledge Graph</div>
                <button class="download-btn" id="downloadBtn">Download HTML</button>
            </div>

            <div class="stats" id="stats"></div>

            <div class="graph-container">
                <iframe id="graphFrame" style="width: 100%; height: 100%; border: none;"></iframe>
            </div>
        </div>

        <div class="loading" id="loading" style="display: none;">
            <div class="spinner"></div>
            <p>Processing your document...</p>
        </div>
    </div>

    <script>
        const uploadArea = document.getElementById('uploadArea');
        const fileInput = document.getElementById('fileInput');
        const uploadForm = document.getElementById('uploadForm');
        const generateBtn = document.getElementById('generateBtn');
        const loading = document.getElementById('loading');
        const resultSection = document.getElementById('resultSection');
        const errorMessage = document.getElementById('errorMessage');
        const graphFrame = document.getElementById('graphFrame');
        const downloadBtn = document.getElementById('downloadBtn');
        const statsDiv = document.getElementById('stats');

        let currentFileId = null;

        uploadArea.addEventListener('click', () => fileInput.click());

        uploadArea.addEventListener('dragover', (e) => {
            e.preventDefault();
            uploadArea.classList.add('dragover');
        });

        uploadArea.addEventListener('dragleave', () => {
            uploadArea.classList.remove('dragover');
        });

        uploadArea.addEventListener('drop', (e) => {
            e.preventDefault();
            uploadArea.classList.remove('dragover');
            const files = e.dataTransfer.files;
            if (files.length > 0) {
                fileInput.files = files;
                updateUploadArea(files[0].name);
            }
        });

        fileInput.addEventListener('change', (e) => {
            if (e.target.files.length > 0) {
                updateUploadArea(e.target.files[0].name);
            }
        });

        function updateUploadArea(filename) {
            uploadArea.querySelector('.upload-text').textContent = filename;
            uploadArea.querySelector('.upload-hint').textContent = 'File selected - ready to generate!';
        }

        uploadForm.addEventListener('submit', async (e) => {
            e.preventDefault();

            if (!fileInput.files.length) {
                showError('Please select a file first!');
                return;
            }

            const formData = new FormData(uploadForm);

            loading.style.display = 'block';
            resultSection.classList.remove('visible');
            errorMessage.classList.remove('visible');
            generateBtn.disabled = true;

            try {
                const response = await fetch('/convert', {
                    method: 'POST',
                    body: formData
                });

                const data = await response.json();

                if (response.ok) {
                    currentFileId = data.file_id;
                    showResult(data);
                } else {
                    showError(data.error || 'An error occurred during conversion');
                }
            } catch (error) {
                showError('Failed to connect to server: ' + error.message);
            } finally {
                loading.style.display = 'none';
                generateBtn.disabled = false;
            }
        });

        function statItem(value, label) {
            return '<div class="stat-item">' +
                '<div class="stat-value">' + value + '</div>' +
                '<div class="stat-label">' + label + '</div>' +
                '</div>';
        }

        function showResult(data) {
            statsDiv.innerHTML =
                statItem(data.stats.nodes, 'Nodes') +
                statItem(data.stats.edges, 'Edges') +
                statItem(data.stats.sections, 'Sections');

            graphFrame.src = '/view/' + data.file_id;

            resultSection.classList.add('visible');
            resultSection.scrollIntoView({ behavior: 'smooth' });
        }

        function showError(message) {
            errorMessage.textContent = message;
            errorMessage.classList.add('visible');
        }

        downloadBtn.addEventListener('click', () => {
            if (currentFileId) {
                window.location.href = '/download/' + currentFileId;
            }
        });
    </script>
</body>
</html>
`
